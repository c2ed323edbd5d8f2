package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcus-webb/repair-shop-api/config"
	"github.com/marcus-webb/repair-shop-api/models"
	"github.com/marcus-webb/repair-shop-api/repositories"
	"github.com/marcus-webb/repair-shop-api/session"
)

// customerPageData feeds the customer portal template.
type customerPageData struct {
	Name    string
	Email   string
	Phone   string
	Repairs []models.Repair
}

// ShowCustomerPortal handles GET /customer - the read-only self-service
// screen, guarded to the customer role. The linked customer record may
// be missing (e.g. deleted by an import); the page stays blank-safe.
func ShowCustomerPortal(c *gin.Context) {
	sess, _ := session.FromContext(c)
	store := config.GetStore()

	me, _ := repositories.NewCustomers(store).FindByID(sess.CustomerID)
	name := me.Name
	if name == "" {
		name = "Customer"
	}

	c.HTML(http.StatusOK, "customer.html", customerPageData{
		Name:    name,
		Email:   me.Email,
		Phone:   me.Phone,
		Repairs: repositories.NewRepairs(store).ForCustomer(sess.CustomerID),
	})
}
