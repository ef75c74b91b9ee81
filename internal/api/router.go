package api

import (
	"github.com/gin-gonic/gin"

	alertH "github.com/pantryos/inventory-service/internal/alert/handler"
	categoryH "github.com/pantryos/inventory-service/internal/category/handler"
	itemH "github.com/pantryos/inventory-service/internal/item/handler"
	shoppingH "github.com/pantryos/inventory-service/internal/shoppinglist/handler"
)

type Handlers struct {
	Item         *itemH.ItemHandler
	Category     *categoryH.CategoryHandler
	Alert        *alertH.AlertHandler
	ShoppingList *shoppingH.ShoppingListHandler
}

func SetupRouter(h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		items := api.Group("/items")
		{
			items.POST("", h.Item.CreateItem)
			items.GET("", h.Item.ListItems)
			items.GET("/:id", h.Item.GetItem)
			items.PUT("/:id", h.Item.UpdateItem)
			items.DELETE("/:id", h.Item.DeleteItem)
			items.POST("/:id/mutate", h.Item.Mutate)
			items.GET("/:id/history", h.Item.ListHistory)
		}

		alerts := api.Group("/alerts")
		{
			alerts.GET("", h.Alert.ListAlerts)
			alerts.POST("/:id/acknowledge", h.Alert.Acknowledge)
			alerts.POST("/:id/enable", h.Alert.SetEnabled)
		}

		shopping := api.Group("/shopping-list")
		{
			shopping.GET("", h.ShoppingList.List)
			shopping.POST("", h.ShoppingList.Create)
			shopping.POST("/:id/check", h.ShoppingList.Check)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", h.Category.ListCategories)
			categories.POST("", h.Category.CreateCategory)
			categories.GET("/:id", h.Category.GetCategory)
			categories.POST("/:id/deactivate", h.Category.Deactivate)
		}
	}

	return router
}
