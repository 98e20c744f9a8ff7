package authController

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"learnhub/config"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/store"
	"learnhub/utils"
	authValidator "learnhub/validators/auth"
)

const (
	stateCookie = "oauth_state"
	userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

func googleOauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.AppConfig.GoogleClientID,
		ClientSecret: config.AppConfig.GoogleClientSecret,
		RedirectURL:  config.AppConfig.GoogleCallbackURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

type googleProfile struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// Signup registers a password account and returns the user with a session
// token.
func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*authValidator.SignupRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request", nil)
	}

	user := models.User{
		Email:     reqData.Email,
		Password:  string(hashedPassword),
		FirstName: reqData.FirstName,
		LastName:  reqData.LastName,
		Role:      models.RoleStudent,
		IsActive:  true,
	}
	if err := database.Stores.Users.Create(c.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered", nil)
		}
		log.Printf("Error saving user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sign up", nil)
	}

	go utils.SendWelcomeEmail(user.Email, user.FirstName)

	token, err := middleware.GenerateJWT(&user)
	if err != nil {
		log.Printf("Error signing token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sign up", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Login verifies a password account and returns a session token.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data", nil)
	}

	user, err := database.Stores.Users.FindByEmail(c.Context(), reqData.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password", nil)
		}
		log.Printf("Error fetching user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to log in", nil)
	}
	if !user.IsActive {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Account is deactivated", nil)
	}
	// OAuth-only accounts have no password to check against.
	if user.Password == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password", nil)
	}

	token, err := middleware.GenerateJWT(user)
	if err != nil {
		log.Printf("Error signing token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to log in", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged in successfully", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// GoogleLogin redirects to the Google consent screen with a nonce that the
// callback checks against a short-lived cookie.
func GoogleLogin(c *fiber.Ctx) error {
	state := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     stateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
	})
	return c.Redirect(googleOauthConfig().AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback exchanges the authorization code, resolves or creates the
// account and redirects back to the frontend with a session token.
func GoogleCallback(c *fiber.Ctx) error {
	if c.Query("state") == "" || c.Query("state") != c.Cookies(stateCookie) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid OAuth state", nil)
	}

	oauthToken, err := googleOauthConfig().Exchange(c.Context(), c.Query("code"))
	if err != nil {
		log.Printf("Error exchanging OAuth code: %v", err)
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "OAuth exchange failed", nil)
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetContext(c.Context()).
		SetAuthToken(oauthToken.AccessToken).
		Get(userInfoURL)
	if err != nil {
		log.Printf("Error fetching Google userinfo: %v", err)
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Failed to fetch Google profile", nil)
	}
	if resp.IsError() {
		log.Printf("Google userinfo returned status %d", resp.StatusCode())
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Failed to fetch Google profile", nil)
	}

	var profile googleProfile
	if err := json.Unmarshal(resp.Body(), &profile); err != nil {
		log.Printf("Error parsing Google userinfo: %v", err)
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Failed to parse Google profile", nil)
	}
	if profile.Email == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Email not provided by Google", nil)
	}

	user, err := resolveGoogleUser(c, &profile, resp.Body())
	if err != nil {
		log.Printf("Error resolving Google user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to log in with Google", nil)
	}

	token, err := middleware.GenerateJWT(user)
	if err != nil {
		log.Printf("Error signing token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to log in with Google", nil)
	}

	return c.Redirect(config.AppConfig.FrontendURL+"/#auth-callback?token="+token, fiber.StatusTemporaryRedirect)
}

// resolveGoogleUser finds the account for a verified Google identity:
// by Google id first, then by email (linking the Google id and avatar to
// the existing record), otherwise it creates a student account.
func resolveGoogleUser(c *fiber.Ctx, profile *googleProfile, rawProfile []byte) (*models.User, error) {
	users := database.Stores.Users

	user, err := users.FindByGoogleID(c.Context(), profile.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	user, err = users.FindByEmail(c.Context(), profile.Email)
	if err == nil {
		patch := models.UserPatch{
			GoogleID:     &profile.ID,
			OAuthProfile: rawProfile,
		}
		if profile.Picture != "" {
			patch.Avatar = &profile.Picture
		}
		return users.Update(c.Context(), user.ID, patch)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	firstName := profile.GivenName
	if firstName == "" {
		firstName = "User"
	}
	newUser := models.User{
		GoogleID:     profile.ID,
		Email:        profile.Email,
		FirstName:    firstName,
		LastName:     profile.FamilyName,
		Avatar:       profile.Picture,
		Role:         models.RoleStudent,
		IsActive:     true,
		OAuthProfile: rawProfile,
	}
	if err := users.Create(c.Context(), &newUser); err != nil {
		return nil, err
	}
	go utils.SendWelcomeEmail(newUser.Email, newUser.FirstName)
	return &newUser, nil
}

// Me returns the account behind the bearer token.
func Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "No token provided", nil)
	}

	user, err := database.Stores.Users.FindByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found", nil)
		}
		log.Printf("Error fetching user %s: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error fetching user", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "", user)
}

// Logout is a stateless no-op for token sessions.
func Logout(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged out successfully", nil)
}
