package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/franhub/franhub/internal/pkg/usercontext"
)

const (
	AUTH_KEY       string = "authenticated"
	USER_ID        string = "user_id"
	USER_NAME      string = "username"
	USER_IS_ADMIN  string = "isAdmin"
	FROM_PROTECTED string = "from_protected"
)

func isLoggedIn(c *fiber.Ctx) bool {
	var fromProtected bool
	if protectedValue := c.Locals(FROM_PROTECTED); protectedValue != nil {
		fromProtected = protectedValue.(bool)
	}

	return fromProtected
}

// ExtractUsername gets the username from Locals (set by middleware)
func ExtractUsername(c *fiber.Ctx) string {
	// Get from Locals (set by authentication middleware)
	if userNameValue := c.Locals(USER_NAME); userNameValue != nil {
		if userName, ok := userNameValue.(string); ok {
			return userName
		}
	}

	return ""
}

// viewContext assembles the bindings every page template needs: user
// context, CSRF token and any pending flash message. Page data is merged
// on top.
func viewContext(c *fiber.Ctx, data fiber.Map) fiber.Map {
	userCtx := usercontext.GetUserContext(c)

	bind := fiber.Map{
		"UserContext": userCtx,
		"IsLoggedIn":  userCtx.IsLoggedIn,
		"IsAdmin":     userCtx.IsAdmin,
		"Username":    userCtx.Username,
		"UserPlan":    userCtx.Plan,
	}
	if token, ok := c.Locals("csrf").(string); ok {
		bind["CSRFToken"] = token
	}
	if fm := flash.Get(c); len(fm) > 0 {
		bind["Flash"] = fm
	}
	for k, v := range data {
		bind[k] = v
	}
	return bind
}

// GetClientIP determines the actual client IP address considering proxies and dual stack
// Returns both IPv4 and IPv6 addresses if available
func GetClientIP(c *fiber.Ctx) (string, string) {
	// Default values
	ipv4 := ""
	ipv6 := ""

	// 1. Check for Cloudflare header
	cfIP := c.Get("CF-Connecting-IP")
	if cfIP != "" {
		// Cloudflare provides the original client IP in this header
		if strings.Contains(cfIP, ":") {
			ipv6 = cfIP

			// Look for IPv4 in X-Forwarded-For header as backup
			xffList := strings.Split(c.Get("X-Forwarded-For"), ",")
			for _, ip := range xffList {
				ip = strings.TrimSpace(ip)
				if ip != "" && !strings.Contains(ip, ":") {
					ipv4 = ip
					break
				}
			}
		} else {
			ipv4 = cfIP

			// Look for IPv6 in X-Forwarded-For header as backup
			xffList := strings.Split(c.Get("X-Forwarded-For"), ",")
			for _, ip := range xffList {
				ip = strings.TrimSpace(ip)
				if strings.Contains(ip, ":") {
					ipv6 = ip
					break
				}
			}
		}
		return ipv4, ipv6
	}

	// 2. Check for X-Forwarded-For header (standard proxy header)
	xff := c.Get("X-Forwarded-For")
	if xff != "" {
		// X-Forwarded-For can contain a list of IPs - the first one is the original client IP
		xffList := strings.Split(xff, ",")
		clientIP := strings.TrimSpace(xffList[0])

		if strings.Contains(clientIP, ":") {
			ipv6 = clientIP
			for i := 1; i < len(xffList); i++ {
				ip := strings.TrimSpace(xffList[i])
				if ip != "" && !strings.Contains(ip, ":") {
					ipv4 = ip
					break
				}
			}
		} else {
			ipv4 = clientIP
			for i := 1; i < len(xffList); i++ {
				ip := strings.TrimSpace(xffList[i])
				if strings.Contains(ip, ":") {
					ipv6 = ip
					break
				}
			}
		}

		if ipv4 != "" || ipv6 != "" {
			return ipv4, ipv6
		}
	}

	// 3. If no proxy headers were found, use the normal IP address
	ipAddr := c.IP()

	// For ::ffff: IPv4-mapped-IPv6 addresses
	if strings.Contains(ipAddr, ":") {
		if strings.Contains(ipAddr, ".") && strings.HasPrefix(ipAddr, "::ffff:") {
			// This is an IPv4 address in IPv6 format
			ipv4 = strings.TrimPrefix(ipAddr, "::ffff:")

			if realIPv6 := c.Get("X-Real-IP"); realIPv6 != "" && strings.Contains(realIPv6, ":") {
				ipv6 = realIPv6
			}
		} else {
			// This is a pure IPv6 address
			ipv6 = ipAddr

			realIPv4 := c.Get("X-Real-IP")
			if realIPv4 != "" && !strings.Contains(realIPv4, ":") {
				ipv4 = realIPv4
			}
		}
	} else {
		// This is a pure IPv4 address
		ipv4 = ipAddr

		realIPv6 := c.Get("X-Real-IP")
		if realIPv6 != "" && strings.Contains(realIPv6, ":") {
			ipv6 = realIPv6
		}
	}

	return ipv4, ipv6
}
