package handlers

import (
	"net/http"
	"strconv"

	"splitledger/internal/metrics"
	"splitledger/internal/middleware"
	"splitledger/internal/models"
	"splitledger/internal/service"
)

// ExpenseHandler handles expense recording and listing within a group.
type ExpenseHandler struct {
	expenses *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(expenses *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// expenseView is the read-only projection of an expense exposed to clients.
type expenseView struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Amount    int64   `json:"amount"`
	GroupID   int64   `json:"group_id"`
	PayerID   int64   `json:"payer_id"`
	DebtorIDs []int64 `json:"debtor_ids"`
	CreatedAt int64   `json:"created_at"`
}

func viewExpense(e *models.Expense) expenseView {
	return expenseView{
		ID:        e.ID,
		Name:      e.Name,
		Amount:    e.Amount,
		GroupID:   e.GroupID,
		PayerID:   e.PayerID,
		DebtorIDs: e.DebtorIDs,
		CreatedAt: e.CreatedAt,
	}
}

// CreateEqualSplit handles POST /groups/{groupID}/expenses with form fields
// name, amount. The acting user pays; every participant becomes a debtor.
func (h *ExpenseHandler) CreateEqualSplit(w http.ResponseWriter, r *http.Request) {
	groupID, ok := groupIDParam(r)
	if !ok {
		writeErrors(w, http.StatusBadRequest, "Group id must be numeric.")
		return
	}
	actorID := middleware.GetUserID(r.Context())

	expense, err := h.expenses.AddEqualSplit(r.Context(), actorID, groupID,
		r.FormValue("name"), r.FormValue("amount"))
	if err != nil {
		writeServiceErr(w, err)
		return
	}

	metrics.ExpensesCreatedTotal.WithLabelValues("equal").Inc()
	writeJSON(w, http.StatusCreated, viewExpense(expense))
}

// CreateCustomSplit handles POST /groups/{groupID}/expenses/custom with form
// fields name, amount, payer, and one or more debtors values.
func (h *ExpenseHandler) CreateCustomSplit(w http.ResponseWriter, r *http.Request) {
	groupID, ok := groupIDParam(r)
	if !ok {
		writeErrors(w, http.StatusBadRequest, "Group id must be numeric.")
		return
	}
	actorID := middleware.GetUserID(r.Context())

	if err := r.ParseForm(); err != nil {
		writeErrors(w, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	payerID, err := strconv.ParseInt(r.FormValue("payer"), 10, 64)
	if err != nil {
		writeErrors(w, http.StatusBadRequest, "Payer id is missing or not numeric.")
		return
	}

	debtorIDs := make([]int64, 0, len(r.Form["debtors"]))
	for _, raw := range r.Form["debtors"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeErrors(w, http.StatusBadRequest, "Debtor ids must be numeric.")
			return
		}
		debtorIDs = append(debtorIDs, id)
	}

	expense, err := h.expenses.AddCustomSplit(r.Context(), actorID, groupID,
		r.FormValue("name"), r.FormValue("amount"), payerID, debtorIDs)
	if err != nil {
		writeServiceErr(w, err)
		return
	}

	metrics.ExpensesCreatedTotal.WithLabelValues("custom").Inc()
	writeJSON(w, http.StatusCreated, viewExpense(expense))
}

// List handles GET /groups/{groupID}/expenses, newest first.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	groupID, ok := groupIDParam(r)
	if !ok {
		writeErrors(w, http.StatusBadRequest, "Group id must be numeric.")
		return
	}
	actorID := middleware.GetUserID(r.Context())

	expenses, err := h.expenses.List(r.Context(), actorID, groupID)
	if err != nil {
		writeServiceErr(w, err)
		return
	}

	views := make([]expenseView, len(expenses))
	for i, e := range expenses {
		views[i] = viewExpense(e)
	}
	writeJSON(w, http.StatusOK, map[string][]expenseView{"expenses": views})
}
