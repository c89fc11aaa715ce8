package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/franhub/franhub/app/models"
	"github.com/franhub/franhub/app/repository"
	"github.com/franhub/franhub/internal/pkg/database"
	"github.com/franhub/franhub/internal/pkg/env"
	"github.com/franhub/franhub/internal/pkg/hcaptcha"
	"github.com/franhub/franhub/internal/pkg/session"
	"github.com/franhub/franhub/internal/pkg/statistics"
)

func HandleAuthLogin(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		fm := fiber.Map{
			"type": "error",
		}

		// notice: in production you should not inform the user
		// with detailed messages about login failures
		user, err := repository.GetGlobalRepositories().User.GetByEmail(c.FormValue("email"))
		if err != nil {
			fm["message"] = "There is a problem with the login process"

			return flash.WithError(c, fm).Redirect("/login")
		}

		if !models.CheckPasswordHash(c.FormValue("password"), user.Password) {
			fm["message"] = "There is a problem with the login process"

			return flash.WithError(c, fm).Redirect("/login")
		}

		if !user.IsActive() {
			fm["message"] = "This account is disabled"

			return flash.WithError(c, fm).Redirect("/login")
		}

		sess, err := session.GetSessionStore().Get(c)
		if err != nil {
			fm["message"] = fmt.Sprintf("something went wrong: %s", err)

			return flash.WithError(c, fm).Redirect("/login")
		}

		sess.Set(AUTH_KEY, true)
		sess.Set(USER_ID, user.ID)
		sess.Set(USER_NAME, user.Name)
		sess.Set(USER_IS_ADMIN, user.IsAdmin())

		err = sess.Save()
		if err != nil {
			fm["message"] = fmt.Sprintf("something went wrong: %s", err)

			return flash.WithError(c, fm).Redirect("/login")
		}

		ipv4, ipv6 := GetClientIP(c)
		lastIP := ipv4
		if lastIP == "" {
			lastIP = ipv6
		}
		database.GetDB().Model(user).Updates(map[string]interface{}{
			"last_login_at": time.Now(),
			"last_login_ip": lastIP,
		})

		fm = fiber.Map{
			"type":    "success",
			"message": "Welcome back!",
		}

		return flash.WithSuccess(c, fm).Redirect("/")
	}

	return c.Render("auth/login", viewContext(c, fiber.Map{
		"PageTitle": "Log in",
	}), "layouts/main")
}

func HandleAuthLogout(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = "logged out (no sess)"

		return flash.WithError(c, fm).Redirect("/login")
	}

	err = sess.Destroy()
	if err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "See you soon!",
	}

	c.Locals(FROM_PROTECTED, false)

	return flash.WithSuccess(c, fm).Redirect("/login")
}

func HandleAuthRegister(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		// Verify hCaptcha token
		hcaptchaToken := c.FormValue("h-captcha-response")
		valid, err := hcaptcha.Verify(hcaptchaToken)
		if err != nil || !valid {
			errorMsg := "Captcha validation failed. Please try again."
			if err != nil && env.IsDev() {
				errorMsg = fmt.Sprintf("Captcha validation failed: %v", err)
			}

			fm := fiber.Map{
				"type":    "error",
				"message": errorMsg,
			}
			return flash.WithError(c, fm).Redirect("/register")
		}

		if err := models.ValidatePasswordPair(c.FormValue("password"), c.FormValue("password_confirm")); err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": err.Error(),
			}
			return flash.WithError(c, fm).Redirect("/register")
		}

		// Create user after successful captcha validation
		user, err := models.CreateUser(c.FormValue("username"), c.FormValue("email"), c.FormValue("password"))
		if err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("something went wrong: %s", err),
			}

			return flash.WithError(c, fm).Redirect("/register")
		}

		err = repository.GetGlobalRepositories().User.Create(user)
		if err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("something went wrong: %s", err),
			}

			return flash.WithError(c, fm).Redirect("/register")
		}

		// Update statistics after registration
		go statistics.UpdateStatisticsCache()

		fm := fiber.Map{
			"type":    "success",
			"message": "Your account is ready. Log in to list your franchise!",
		}

		return flash.WithSuccess(c, fm).Redirect("/login")
	}

	return c.Render("auth/register", viewContext(c, fiber.Map{
		"PageTitle":       "Create account",
		"HCaptchaSiteKey": env.GetEnv("HCAPTCHA_SITEKEY", ""),
	}), "layouts/main")
}
