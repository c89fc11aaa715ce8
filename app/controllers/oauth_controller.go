package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/markbates/goth"
	gothfiber "github.com/shareed2k/goth_fiber"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/franhub/franhub/app/models"
	"github.com/franhub/franhub/internal/pkg/database"
	"github.com/franhub/franhub/internal/pkg/session"
)

// HandleOAuthCallback completes the provider flow, links or creates the
// local account and opens an app session.
func HandleOAuthCallback(c *fiber.Ctx) error {
	gothUser, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		log.Warnf("oauth callback rejected: %v", err)
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Sign-in failed. Please try again."}).Redirect("/login")
	}

	user, err := userForProviderIdentity(gothUser)
	if err != nil {
		log.Errorf("oauth account linking failed: %v", err)
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Could not complete sign-in."}).Redirect("/login")
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Could not start a session."}).Redirect("/login")
	}
	sess.Set(AUTH_KEY, true)
	sess.Set(USER_ID, user.ID)
	sess.Set(USER_NAME, user.Name)
	sess.Set(USER_IS_ADMIN, user.IsAdmin())
	if err := sess.Save(); err != nil {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Could not start a session."}).Redirect("/login")
	}

	ipv4, ipv6 := GetClientIP(c)
	lastIP := ipv4
	if lastIP == "" {
		lastIP = ipv6
	}
	_ = database.GetDB().Model(user).Updates(map[string]interface{}{
		"last_login_at": time.Now(),
		"last_login_ip": lastIP,
	}).Error

	return flash.WithSuccess(c, fiber.Map{"type": "success", "message": "Welcome back!"}).Redirect("/")
}

// userForProviderIdentity resolves a provider identity to a local user.
// Known identities get refreshed tokens; unknown ones are matched by email
// or turned into a fresh account.
func userForProviderIdentity(gothUser goth.User) (*models.User, error) {
	db := database.GetDB()

	var account models.ProviderAccount
	res := db.Where("provider = ? AND provider_user_id = ?", gothUser.Provider, gothUser.UserID).First(&account)

	if res.Error == nil {
		account.AccessToken = gothUser.AccessToken
		account.RefreshToken = gothUser.RefreshToken
		account.ExpiresAt = expiryOrNil(gothUser.ExpiresAt)
		if err := db.Save(&account).Error; err != nil {
			return nil, fmt.Errorf("update provider tokens: %w", err)
		}

		var user models.User
		if err := db.First(&user, account.UserID).Error; err != nil {
			return nil, fmt.Errorf("linked user %d not found: %w", account.UserID, err)
		}
		return &user, nil
	}

	if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, res.Error
	}

	var user models.User
	if gothUser.Email != "" {
		_ = db.Where("email = ?", gothUser.Email).First(&user).Error
	}
	if user.ID == 0 {
		created, err := createUserFromProvider(db, gothUser)
		if err != nil {
			return nil, err
		}
		user = *created
	}

	account = models.ProviderAccount{
		UserID:         user.ID,
		Provider:       gothUser.Provider,
		ProviderUserID: gothUser.UserID,
		AccessToken:    gothUser.AccessToken,
		RefreshToken:   gothUser.RefreshToken,
		ExpiresAt:      expiryOrNil(gothUser.ExpiresAt),
	}
	if err := db.Create(&account).Error; err != nil {
		return nil, fmt.Errorf("link provider account: %w", err)
	}

	return &user, nil
}

func createUserFromProvider(db *gorm.DB, gothUser goth.User) (*models.User, error) {
	// OAuth accounts never log in with a password, but the column is
	// required; store an unguessable placeholder hash.
	hash, _ := models.HashPassword(fmt.Sprintf("oauth_%d", time.Now().UnixNano()))

	email := gothUser.Email
	if email == "" {
		// unique synthetic address to satisfy the email index
		email = fmt.Sprintf("%s_%s@%s.oauth.local", gothUser.Provider, gothUser.UserID, gothUser.Provider)
	}

	user := models.User{
		Name:     firstNonEmpty(gothUser.Name, gothUser.NickName, gothUser.Email, "User"),
		Email:    email,
		Password: hash,
		Role:     models.ROLE_USER,
		Status:   models.STATUS_ACTIVE,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func expiryOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
