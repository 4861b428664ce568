package server

import (
	"net/url"
	"strconv"
)

func urlEncode(s string) string { return url.QueryEscape(s) }

func itoa(n int) string { return strconv.Itoa(n) }
