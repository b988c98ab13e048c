package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"creator-finance/internal/apperr"
	"creator-finance/internal/ledger"
)

type transactionInput struct {
	Source      *string          `json:"source"`
	Amount      *decimal.Decimal `json:"amount"`
	Type        *string          `json:"type"`
	Status      *string          `json:"status"`
	Date        *string          `json:"date"`
	Description *string          `json:"description"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// parseLimit reads ?limit=. Absent means ledger.DefaultLimit, "all" means every row.
func parseLimit(raw string) (int, error) {
	switch raw {
	case "":
		return ledger.DefaultLimit, nil
	case "all":
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperr.Validation("limit must be a positive integer or 'all'")
	}
	return n, nil
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid transaction id")
	}
	return uint(id), nil
}

// GET /api/transactions
func (s *Server) listTransactions(c *gin.Context) {
	limit, err := parseLimit(c.Query("limit"))
	if err != nil {
		respondError(c, err)
		return
	}

	txs, err := s.ledger.List(c.Request.Context(), currentUserID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, txs)
}

// POST /api/transactions
func (s *Server) addTransaction(c *gin.Context) {
	var input transactionInput
	if err := bindJSON(c, s.schemas.transactionCreate, &input); err != nil {
		respondError(c, err)
		return
	}

	in := ledger.NewTransaction{
		Source:      deref(input.Source),
		Type:        deref(input.Type),
		Status:      deref(input.Status),
		Date:        deref(input.Date),
		Description: input.Description,
	}
	if input.Amount != nil {
		in.Amount = *input.Amount
	}

	tx, err := s.ledger.Add(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, gin.H{"message": "Transaction added successfully", "transaction": tx})
}

// PUT /api/transactions/:id
func (s *Server) updateTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var input transactionInput
	if err := bindJSON(c, s.schemas.transactionUpdate, &input); err != nil {
		respondError(c, err)
		return
	}

	tx, err := s.ledger.Update(c.Request.Context(), currentUserID(c), id, ledger.TransactionPatch{
		Source:      input.Source,
		Amount:      input.Amount,
		Type:        input.Type,
		Status:      input.Status,
		Date:        input.Date,
		Description: input.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Transaction updated successfully", "transaction": tx})
}

// DELETE /api/transactions/:id
func (s *Server) deleteTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := s.ledger.Remove(c.Request.Context(), currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Transaction deleted successfully"})
}
