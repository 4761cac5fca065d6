package handlers

import (
	"errors"
	"net/http"
	"time"

	"daily_diet/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errMealNotFound = "Meal not found"
	errInternal     = "internal error"
)

// mealRequest is the shared payload for creating and replacing a meal.
// Date is RFC3339.
type mealRequest struct {
	Name          string    `json:"name" binding:"required"`
	Description   string    `json:"description" binding:"required"`
	Date          time.Time `json:"date" binding:"required"`
	IsOnDailyDiet *bool     `json:"isOnDailyDiet" binding:"required"`
}

func (r mealRequest) toInput() service.MealInput {
	return service.MealInput{
		Name:          r.Name,
		Description:   r.Description,
		Date:          r.Date,
		IsOnDailyDiet: *r.IsOnDailyDiet,
	}
}

// mealErrorResponse maps service errors to statuses: absent meal → 404,
// foreign meal → 401, anything else → 500.
func (h *Handler) mealErrorResponse(c *gin.Context, logKey string, err error) {
	switch {
	case errors.Is(err, service.ErrMealNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errMealNotFound})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
	default:
		if h.log != nil {
			h.log.Errorw(logKey, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternal})
	}
}

// @Summary      Log a meal
// @Tags         meals
// @Accept       json
// @Produce      json
// @Param        body  body  mealRequest  true  "Meal payload"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /meals [post]
func (h *Handler) createMeal(c *gin.Context) {
	var req mealRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	meal, err := h.services.Meals.Create(c.Request.Context(), identityFrom(c), req.toInput())
	if err != nil {
		h.mealErrorResponse(c, "meal_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meal": meal})
}

// @Summary      Replace a meal
// @Tags         meals
// @Accept       json
// @Produce      json
// @Param        id    path  string       true  "Meal ID"
// @Param        body  body  mealRequest  true  "Meal payload"
// @Success      204
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /meals/{id} [put]
func (h *Handler) updateMeal(c *gin.Context) {
	var req mealRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	if err := h.services.Meals.Update(c.Request.Context(), identityFrom(c), c.Param("id"), req.toInput()); err != nil {
		h.mealErrorResponse(c, "meal_update_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Delete a meal
// @Tags         meals
// @Produce      json
// @Param        id  path  string  true  "Meal ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /meals/{id} [delete]
func (h *Handler) deleteMeal(c *gin.Context) {
	if err := h.services.Meals.Delete(c.Request.Context(), identityFrom(c), c.Param("id")); err != nil {
		h.mealErrorResponse(c, "meal_delete_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      List own meals
// @Description  Newest first.
// @Tags         meals
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "meals"
// @Failure      401  {object}  map[string]string
// @Router       /meals [get]
func (h *Handler) listMeals(c *gin.Context) {
	meals, err := h.services.Meals.List(c.Request.Context(), identityFrom(c))
	if err != nil {
		h.mealErrorResponse(c, "meal_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// @Summary      Get one of your meals
// @Tags         meals
// @Produce      json
// @Param        id  path  string  true  "Meal ID"
// @Success      200  {object}  map[string]interface{}  "meal"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /meals/{id} [get]
func (h *Handler) getMeal(c *gin.Context) {
	meal, err := h.services.Meals.Get(c.Request.Context(), identityFrom(c), c.Param("id"))
	if err != nil {
		h.mealErrorResponse(c, "meal_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

// @Summary      Adherence metrics
// @Description  Totals and longest on-diet streak over the full meal history.
// @Tags         meals
// @Produce      json
// @Success      200  {object}  models.AdherenceMetrics
// @Failure      401  {object}  map[string]string
// @Router       /meals/metrics [get]
func (h *Handler) getMetrics(c *gin.Context) {
	metrics, err := h.services.Adherence.Metrics(c.Request.Context(), identityFrom(c))
	if err != nil {
		h.mealErrorResponse(c, "metrics_failed", err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}
