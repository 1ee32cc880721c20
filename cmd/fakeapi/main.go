package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/nashvel/convenience-store-sub000/config"
	"github.com/nashvel/convenience-store-sub000/internal/apifake"
	"github.com/nashvel/convenience-store-sub000/internal/models"
)

func init() {
	// Initialize logger
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

func main() {
	cfg := config.Load()
	port := cfg.DevServerPort

	srv := apifake.New()
	seed(srv)

	router := srv.Router()
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.WithField("port", port).Info("Storefront dev API starting")
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

// seed loads a small browsable catalog and one signed-in customer so
// the client stack has something to talk to out of the box.
func seed(srv *apifake.Server) {
	srv.SeedUser("dev-token", "user-1")

	srv.SeedStores([]models.Store{
		{ID: "store-1", Name: "Corner Mart"},
		{ID: "store-2", Name: "Night Owl Goods"},
	})

	srv.SeedProducts([]models.Product{
		{ID: "p-1", StoreID: "store-1", Name: "Instant Noodles", Price: 25, Stock: 120, Category: "Food"},
		{ID: "p-2", StoreID: "store-1", Name: "Canned Coffee", Price: 45, Discount: 10, Stock: 60, Category: "Food"},
		{ID: "p-3", StoreID: "store-2", Name: "Phone Charger", Price: 350, Stock: 15, Category: "Electronics"},
		{ID: "p-4", StoreID: "store-2", Name: "Notebook", Price: 80, Stock: 40, Category: "School"},
	})

	food := "cat-1"
	srv.SeedCategories([]models.Category{
		{ID: "cat-1", Name: "Food", ParentID: nil},
		{ID: "cat-2", Name: "Snacks", ParentID: &food},
		{ID: "cat-3", Name: "Drinks", ParentID: &food},
		{ID: "cat-4", Name: "Electronics", ParentID: nil},
	})
}
