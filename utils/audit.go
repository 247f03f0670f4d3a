package utils

import (
	"net"
	"strings"

	"github.com/kataras/iris/v12"
)

// clientIP is recorded on audit rows. The first X-Forwarded-For hop wins.
func clientIP(ctx iris.Context) string {
	if fwd := ctx.GetHeader("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	ip, _, err := net.SplitHostPort(ctx.RemoteAddr())
	if err != nil {
		return ctx.RemoteAddr()
	}
	return ip
}
