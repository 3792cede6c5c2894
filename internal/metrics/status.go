package metrics

import "strconv"

func statusText(code int) string {
	if code == 0 {
		code = 200
	}
	return strconv.Itoa(code)
}
