package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/marcus-webb/repair-shop-api/config"
	"github.com/marcus-webb/repair-shop-api/logger"
	"github.com/marcus-webb/repair-shop-api/models"
	"github.com/marcus-webb/repair-shop-api/repositories"
	"github.com/marcus-webb/repair-shop-api/session"
	"github.com/marcus-webb/repair-shop-api/storage"
)

// loginPageData feeds the login template.
type loginPageData struct {
	Error      string
	Identity   string
	Role       string
	SeedNotice string
}

// ShowLogin handles GET / - renders the login screen. An already
// authenticated visitor is sent straight to their screen. The default
// admin is seeded here when the users collection is empty, with a
// one-time notice on the request that actually seeded it.
func ShowLogin(c *gin.Context) {
	if sess, ok := session.Get(); ok {
		if sess.Role == models.RoleCustomer {
			c.Redirect(http.StatusFound, "/customer")
		} else {
			c.Redirect(http.StatusFound, "/dashboard")
		}
		return
	}

	data := loginPageData{Role: "staff"}
	users := repositories.NewUsers(config.GetStore())
	if users.Seed() {
		data.SeedNotice = fmt.Sprintf("Default admin created (%s / %s)",
			repositories.DefaultAdminUsername, repositories.DefaultAdminPassword)
	}

	c.HTML(http.StatusOK, "login.html", data)
}

// Login handles POST /login - matches credentials against customers or
// staff depending on the selected role. Failures render a generic
// message without revealing which field was wrong.
func Login(c *gin.Context) {
	role := c.PostForm("role")
	identity := strings.TrimSpace(c.PostForm("identity"))
	password := c.PostForm("password")
	store := config.GetStore()

	if role == models.RoleCustomer {
		customer, found := repositories.NewCustomers(store).FindByCredentials(identity, password)
		if !found {
			renderLoginError(c, "Invalid customer login", identity, role)
			return
		}
		if err := session.Set(models.Session{Role: models.RoleCustomer, CustomerID: customer.ID}); err != nil {
			logger.Warningf("unable to save session: %v", err)
		}
		logger.Infof("customer %q logged in", customer.Email)
		c.Redirect(http.StatusFound, "/customer")
		return
	}

	user, found := repositories.NewUsers(store).FindByCredentials(identity, password)
	if !found {
		renderLoginError(c, "Invalid admin/mechanic login", identity, role)
		return
	}
	if err := session.Set(models.Session{Role: user.Role, UserID: user.ID, Username: user.Username}); err != nil {
		logger.Warningf("unable to save session: %v", err)
	}
	logger.Infof("%s logged in as %s", user.Username, user.Role)
	c.Redirect(http.StatusFound, "/dashboard")
}

// renderLoginError re-renders the login screen with the identity field
// retained for correction.
func renderLoginError(c *gin.Context, message, identity, role string) {
	c.HTML(http.StatusUnauthorized, "login.html", loginPageData{
		Error:    message,
		Identity: identity,
		Role:     role,
	})
}

// Logout handles GET /logout - clears the session and returns to login.
func Logout(c *gin.Context) {
	if sess, ok := session.Get(); ok && sess.Username != "" {
		logger.Infof("%s logged out", sess.Username)
	}
	if err := session.Clear(); err != nil {
		logger.Warningf("unable to clear session: %v", err)
	}
	c.Redirect(http.StatusFound, "/")
}

// ResetData handles POST /reset - destructively wipes all stored data
// and the session. The next login page load reseeds the default admin.
// The confirmation dialog lives in the template.
func ResetData(c *gin.Context) {
	store := config.GetStore()
	for _, key := range []string{storage.KeyUsers, storage.KeyCustomers, storage.KeyRepairs, storage.KeySession} {
		if err := store.Remove(key); err != nil {
			logger.Errorf("reset failed removing %q: %v", key, err)
		}
	}
	logger.Warning("all application data was reset")
	c.Redirect(http.StatusFound, "/")
}
