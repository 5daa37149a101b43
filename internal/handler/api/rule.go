package api

import (
	"net/http"

	reqdto "stayhub/internal/handler/dto/request"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RuleHandler struct {
	ruleCommands commands.RuleCommands
	ruleQueries  queries.RuleQueries
}

func NewRuleHandler(ruleCommands commands.RuleCommands, ruleQueries queries.RuleQueries) *RuleHandler {
	return &RuleHandler{
		ruleCommands: ruleCommands,
		ruleQueries:  ruleQueries,
	}
}

// @Summary Create booking rule
// @Description Create a booking rule applied during reservation checks
// @Tags rules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRuleRequest true "Rule"
// @Success 201 {object} queries.RuleView
// @Failure 400 {object} map[string]string
// @Router /rules [post]
func (h *RuleHandler) CreateRule(c *gin.Context) {
	var req reqdto.CreateRuleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params, err := req.ToParams()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	created, err := h.ruleCommands.Create(c.Request.Context(), params)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrInvalidRuleValue):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Rule value does not match rule type",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":        created.ID,
		"name":      created.Name,
		"rule_type": string(created.Constraint.Type()),
		"priority":  created.Priority,
		"is_active": created.IsActive,
	})
}

// @Summary List booking rules
// @Description List all booking rules, highest priority first
// @Tags rules
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.RuleView
// @Failure 401 {object} map[string]string
// @Router /rules [get]
func (h *RuleHandler) ListRules(c *gin.Context) {
	views, err := h.ruleQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}
