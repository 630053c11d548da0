package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/roach88/stringvault/internal/filter"
	"github.com/roach88/stringvault/internal/service"
)

// stringsHandler handles the /strings resource.
type stringsHandler struct {
	svc *service.Service
}

// createRequest is decoded loosely so a non-string value can be told apart
// from a missing one.
type createRequest struct {
	Value json.RawMessage `json:"value"`
}

// Create handles POST /strings.
func (h *stringsHandler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithDetail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if len(req.Value) == 0 {
		abortWithDetail(c, http.StatusBadRequest, "Missing or empty value")
		return
	}

	var value string
	if err := json.Unmarshal(req.Value, &value); err != nil || string(req.Value) == "null" {
		abortWithDetail(c, http.StatusUnprocessableEntity, "Value must be a string")
		return
	}

	rec, err := h.svc.Create(c.Request.Context(), value)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Get handles GET /strings/:value.
func (h *stringsHandler) Get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("value"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Delete handles DELETE /strings/:value.
func (h *stringsHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("value")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List handles GET /strings with optional filter query parameters.
func (h *stringsHandler) List(c *gin.Context) {
	set, err := parseFilterQuery(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	res, err := h.svc.List(c.Request.Context(), set)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Query handles GET /strings/filter-by-natural-language?query=...
func (h *stringsHandler) Query(c *gin.Context) {
	q, ok := c.GetQuery("query")
	if !ok {
		abortWithDetail(c, http.StatusBadRequest, "Missing query parameter")
		return
	}

	res, err := h.svc.Query(c.Request.Context(), q)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// healthCheck handles GET /health.
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "stringvault",
	})
}

// parseFilterQuery reads the list filter parameters. Absent parameters stay
// absent; malformed ones fail with a *filter.ValidationError.
func parseFilterQuery(c *gin.Context) (filter.Set, error) {
	var set filter.Set

	if raw, ok := c.GetQuery("is_palindrome"); ok {
		b, err := parseBool(raw)
		if err != nil {
			return filter.Set{}, &filter.ValidationError{Field: "is_palindrome", Message: "must be a boolean"}
		}
		set = set.WithPalindrome(b)
	}

	ints := []struct {
		name string
		with func(filter.Set, int) filter.Set
	}{
		{"min_length", filter.Set.WithMinLength},
		{"max_length", filter.Set.WithMaxLength},
		{"word_count", filter.Set.WithWordCount},
	}
	for _, p := range ints {
		raw, ok := c.GetQuery(p.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return filter.Set{}, &filter.ValidationError{Field: p.name, Message: "must be an integer"}
		}
		set = p.with(set, n)
	}

	if raw, ok := c.GetQuery("contains_character"); ok {
		set = set.WithContainsCharacter(raw)
	}

	return set, nil
}

// parseBool accepts the spellings common query-string clients send.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on", "t", "y":
		return true, nil
	case "false", "0", "no", "off", "f", "n":
		return false, nil
	}
	return false, strconv.ErrSyntax
}
