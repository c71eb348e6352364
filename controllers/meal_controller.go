package controllers

import (
	"io"
	"log"
	"net/http"

	"github.com/luizverissimo/desafio-ignite-nodejs-02/middlewares"
	"github.com/luizverissimo/desafio-ignite-nodejs-02/models"
	"github.com/luizverissimo/desafio-ignite-nodejs-02/services"
	"github.com/luizverissimo/desafio-ignite-nodejs-02/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type MealController struct {
	Meals   *services.MealService
	Metrics *services.MetricsService
	Events  *services.EventBus
}

// constructor
func NewMealController(ms *services.MealService, mt *services.MetricsService, ev *services.EventBus) *MealController {
	return &MealController{Meals: ms, Metrics: mt, Events: ev}
}

type CreateMealInput struct {
	Name        *string         `json:"name" binding:"required"`
	Description *string         `json:"description" binding:"required"`
	DateTime    *utils.DateTime `json:"date_time" binding:"required"`
	IsOnDiet    *bool           `json:"is_on_diet" binding:"required"`
}

type UpdateMealInput struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	DateTime    *utils.DateTime `json:"date_time"`
	IsOnDiet    *bool           `json:"is_on_diet"`
}

func (in UpdateMealInput) toUpdate() models.MealUpdate {
	upd := models.MealUpdate{
		Name:        in.Name,
		Description: in.Description,
		IsOnDiet:    in.IsOnDiet,
	}
	if in.DateTime != nil {
		s := in.DateTime.String()
		upd.DateTime = &s
	}
	return upd
}

func (mc *MealController) Create(c *gin.Context) {
	var in CreateMealInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, invalidBody(err))
		return
	}

	sid := middlewares.SessionID(c)
	meal := &models.Meal{
		Name:        *in.Name,
		Description: *in.Description,
		DateTime:    in.DateTime.String(),
		IsOnDiet:    *in.IsOnDiet,
		SessionID:   sid,
	}
	if err := mc.Meals.Create(c.Request.Context(), meal); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	mc.Events.Publish(sid, models.MealEvent{Kind: models.MealCreated, MealID: meal.ID, Meal: meal})
	c.Status(http.StatusCreated)
}

// Update answers 201 even when the session owns no such meal.
func (mc *MealController) Update(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, invalidBody(err))
		return
	}
	var in UpdateMealInput
	if err := binding.JSON.BindBody(body, &in); err != nil {
		c.JSON(http.StatusBadRequest, invalidBody(err))
		return
	}
	// a field is either omitted or set; null is not "leave unchanged"
	if nulls := nullFields(body, "name", "description", "date_time", "is_on_diet"); len(nulls) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": nulls})
		return
	}

	sid := middlewares.SessionID(c)
	id := c.Param("id")
	ctx := c.Request.Context()

	found, err := mc.Meals.UpdateByID(ctx, sid, id, in.toUpdate())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if found {
		meal, err := mc.Meals.GetByID(ctx, sid, id)
		if err != nil {
			log.Printf("meals: reload %s after update: %v", id, err)
		}
		mc.Events.Publish(sid, models.MealEvent{Kind: models.MealUpdated, MealID: id, Meal: meal})
	}
	c.Status(http.StatusCreated)
}

// Delete answers 201 even when the session owns no such meal.
func (mc *MealController) Delete(c *gin.Context) {
	sid := middlewares.SessionID(c)
	id := c.Param("id")

	found, err := mc.Meals.DeleteByID(c.Request.Context(), sid, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if found {
		mc.Events.Publish(sid, models.MealEvent{Kind: models.MealDeleted, MealID: id})
	}
	c.Status(http.StatusCreated)
}

func (mc *MealController) List(c *gin.Context) {
	meals, err := mc.Meals.ListBySession(c.Request.Context(), middlewares.SessionID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

// Get writes null when the meal is absent.
func (mc *MealController) Get(c *gin.Context) {
	meal, err := mc.Meals.GetByID(c.Request.Context(), middlewares.SessionID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (mc *MealController) GetMetrics(c *gin.Context) {
	out, err := mc.Metrics.SessionMetrics(c.Request.Context(), middlewares.SessionID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}
