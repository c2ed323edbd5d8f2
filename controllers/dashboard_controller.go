package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/marcus-webb/repair-shop-api/config"
	"github.com/marcus-webb/repair-shop-api/logger"
	"github.com/marcus-webb/repair-shop-api/models"
	"github.com/marcus-webb/repair-shop-api/repositories"
	"github.com/marcus-webb/repair-shop-api/session"
	"github.com/marcus-webb/repair-shop-api/utils"
)

// MissingCustomerPlaceholder is rendered for repairs whose customer no
// longer exists. Dangling references are display-only, never an error.
const MissingCustomerPlaceholder = "—"

// RepairRow is one line of the dashboard repair queue: a repair joined
// to its customer.
type RepairRow struct {
	ID            int
	CustomerName  string
	CustomerEmail string
	Vehicle       string
	Issue         string
	Status        string
	UpdatedAt     string
}

// customerFormData keeps submitted values so a failed validation
// re-renders the form with the input retained.
type customerFormData struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// dashboardPageData feeds the dashboard template.
type dashboardPageData struct {
	Who          string
	Customers    []models.Customer
	Rows         []RepairRow
	Query        string
	Notice       string
	Error        string
	Statuses     []string
	CustomerForm customerFormData
}

// FilterRepairRows joins each repair to its customer, applies the
// free-text filter and sorts by id descending. It is a pure function of
// its inputs. The filter is a case-insensitive substring match across
// customer name, customer email, vehicle, issue, status and id; a
// repair with no matching customer contributes empty strings to the
// haystack and renders with a placeholder name.
func FilterRepairRows(query string, repairs []models.Repair, customers []models.Customer) []RepairRow {
	byID := make(map[int]models.Customer, len(customers))
	for _, customer := range customers {
		byID[customer.ID] = customer
	}

	q := strings.ToLower(query)
	rows := make([]RepairRow, 0, len(repairs))
	for _, repair := range repairs {
		customer, found := byID[repair.CustomerID]

		haystack := strings.ToLower(strings.Join([]string{
			customer.Name,
			customer.Email,
			repair.Vehicle,
			repair.Issue,
			repair.Status,
			strconv.Itoa(repair.ID),
		}, " "))
		if !strings.Contains(haystack, q) {
			continue
		}

		row := RepairRow{
			ID:            repair.ID,
			CustomerName:  customer.Name,
			CustomerEmail: customer.Email,
			Vehicle:       repair.Vehicle,
			Issue:         repair.Issue,
			Status:        repair.Status,
			UpdatedAt:     repair.UpdatedAt,
		}
		if !found || row.CustomerName == "" {
			row.CustomerName = MissingCustomerPlaceholder
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	return rows
}

// renderDashboard renders the dashboard screen with fresh collection
// reads, so every mutation path re-renders current state.
func renderDashboard(c *gin.Context, status int, notice, errMsg string, form customerFormData) {
	sess, _ := session.FromContext(c)
	store := config.GetStore()
	customers := repositories.NewCustomers(store).List()
	repairs := repositories.NewRepairs(store).List()
	query := c.Query("q")

	who := sess.Role
	if sess.Username != "" {
		who = fmt.Sprintf("%s (%s)", sess.Username, sess.Role)
	}

	c.HTML(status, "dashboard.html", dashboardPageData{
		Who:          who,
		Customers:    customers,
		Rows:         FilterRepairRows(query, repairs, customers),
		Query:        query,
		Notice:       notice,
		Error:        errMsg,
		Statuses:     models.RepairStatuses,
		CustomerForm: form,
	})
}

// ShowDashboard handles GET /dashboard - the staff screen, guarded to
// admin and mechanic roles.
func ShowDashboard(c *gin.Context) {
	renderDashboard(c, http.StatusOK, c.Query("notice"), c.Query("error"), customerFormData{})
}

// redirectDashboard issues a post-mutation redirect, carrying the
// notice/error and preserving the active filter.
func redirectDashboard(c *gin.Context, params url.Values) {
	target := "/dashboard"
	if encoded := params.Encode(); encoded != "" {
		target += "?" + encoded
	}
	c.Redirect(http.StatusFound, target)
}

// CreateCustomer handles POST /customers - validates trimmed required
// fields and the unique email rule, then persists the new customer.
func CreateCustomer(c *gin.Context) {
	form := customerFormData{
		Name:     strings.TrimSpace(c.PostForm("name")),
		Email:    strings.TrimSpace(c.PostForm("email")),
		Phone:    strings.TrimSpace(c.PostForm("phone")),
		Password: strings.TrimSpace(c.PostForm("password")),
	}

	if form.Name == "" || form.Email == "" || form.Phone == "" || form.Password == "" {
		renderDashboard(c, http.StatusBadRequest, "", "All customer fields are required", form)
		return
	}

	customers := repositories.NewCustomers(config.GetStore())
	_, err := customers.Create(models.Customer{
		Name:      form.Name,
		Email:     form.Email,
		Phone:     form.Phone,
		Password:  form.Password,
		CreatedAt: utils.NowStamp(),
	})
	if errors.Is(err, repositories.ErrDuplicateEmail) {
		renderDashboard(c, http.StatusConflict, "", "Email already exists", form)
		return
	}
	if err != nil {
		logger.Errorf("failed to create customer: %v", err)
		renderDashboard(c, http.StatusInternalServerError, "", "Failed to save customer", form)
		return
	}

	redirectDashboard(c, url.Values{"notice": {"Customer created."}})
}

// CreateRepair handles POST /repairs - requires a selected customer,
// defaults the status to Received and persists the new job.
func CreateRepair(c *gin.Context) {
	customerID, err := strconv.Atoi(c.PostForm("customer_id"))
	if err != nil || customerID <= 0 {
		redirectDashboard(c, url.Values{"error": {"Select a customer"}})
		return
	}

	status := c.PostForm("status")
	if status == "" {
		status = models.StatusReceived
	}
	if !models.IsValidStatus(status) {
		redirectDashboard(c, url.Values{"error": {"Unknown repair status"}})
		return
	}

	repairs := repositories.NewRepairs(config.GetStore())
	_, err = repairs.Create(models.Repair{
		CustomerID: customerID,
		Vehicle:    strings.TrimSpace(c.PostForm("vehicle")),
		Issue:      strings.TrimSpace(c.PostForm("issue")),
		Status:     status,
		UpdatedAt:  utils.NowStamp(),
	})
	if err != nil {
		logger.Errorf("failed to create repair: %v", err)
		redirectDashboard(c, url.Values{"error": {"Failed to save repair"}})
		return
	}

	redirectDashboard(c, url.Values{"notice": {"Repair job created."}})
}

// UpdateRepairStatus handles POST /repairs/:id/status - persists an
// inline status change and re-renders with the filter preserved.
// Unknown ids are a silent no-op.
func UpdateRepairStatus(c *gin.Context) {
	params := url.Values{}
	if q := c.PostForm("q"); q != "" {
		params.Set("q", q)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		redirectDashboard(c, params)
		return
	}

	status := c.PostForm("status")
	if !models.IsValidStatus(status) {
		params.Set("error", "Unknown repair status")
		redirectDashboard(c, params)
		return
	}

	repairs := repositories.NewRepairs(config.GetStore())
	if err := repairs.UpdateStatus(id, status); err != nil {
		logger.Errorf("failed to update repair %d: %v", id, err)
		params.Set("error", "Failed to update repair")
	}
	redirectDashboard(c, params)
}

// DeleteRepair handles POST /repairs/:id/delete - removes a repair.
// The confirmation dialog lives in the template.
func DeleteRepair(c *gin.Context) {
	params := url.Values{}
	if q := c.PostForm("q"); q != "" {
		params.Set("q", q)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		redirectDashboard(c, params)
		return
	}

	repairs := repositories.NewRepairs(config.GetStore())
	if err := repairs.Delete(id); err != nil {
		logger.Errorf("failed to delete repair %d: %v", id, err)
		params.Set("error", "Failed to delete repair")
	}
	redirectDashboard(c, params)
}
