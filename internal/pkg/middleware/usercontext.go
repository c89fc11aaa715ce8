package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/franhub/franhub/app/controllers"
	"github.com/franhub/franhub/app/repository"
	"github.com/franhub/franhub/internal/pkg/entitlements"
	"github.com/franhub/franhub/internal/pkg/session"
	"github.com/franhub/franhub/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the session into a UserContext for every
// request: identity, admin flag and the effective plan tier.
func UserContextMiddleware(c *fiber.Ctx) error {
	// Goth keeps its own fiber session store for OAuth state. Touching our
	// app session on /auth/* collides with it, so those routes stay bare.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return anonymous(c)
	}

	userID, ok := sess.Get(usercontext.KeyUserID).(uint)
	if !ok || userID == 0 {
		return anonymous(c)
	}

	username := session.GetSessionValue(c, usercontext.KeyUsername)
	isAdmin, _ := sess.Get(usercontext.KeyIsAdmin).(bool)

	// Plan is cached in the session and cleared on checkout success, so
	// upgrades show up on the next request without a DB hit per page.
	plan := session.GetSessionValue(c, usercontext.KeyUserPlan)
	if plan == "" {
		plan = "basic"
		if repos := repository.GetGlobalRepositories(); repos != nil {
			resolver := entitlements.NewResolver(repos.Subscription, repos.PlanLimit, repos.Listing)
			plan = resolver.EffectivePlan(userID, time.Now())
		}
		_ = session.SetSessionValue(c, usercontext.KeyUserPlan, plan)
	}

	userCtx := usercontext.UserContext{
		UserID:     userID,
		Username:   username,
		IsLoggedIn: true,
		IsAdmin:    isAdmin,
		Plan:       plan,
	}
	usercontext.Store(c, userCtx)

	// Locals the template helpers and older handlers still read.
	c.Locals(controllers.FROM_PROTECTED, true)
	c.Locals(controllers.USER_NAME, username)
	c.Locals(controllers.USER_ID, userID)
	c.Locals(controllers.USER_IS_ADMIN, userCtx.IsAdmin)

	return c.Next()
}

func anonymous(c *fiber.Ctx) error {
	usercontext.Store(c, usercontext.Anonymous())
	c.Locals(controllers.FROM_PROTECTED, false)
	c.Locals(controllers.USER_IS_ADMIN, false)
	return c.Next()
}
