package main

import (
	"os"

	"geotodo/internal/config"
	"geotodo/internal/logger"
	"geotodo/internal/mongo"
	"geotodo/internal/mysql"
	"geotodo/internal/routing"
	"geotodo/pkg/middleware"
	"geotodo/pkg/user"

	"github.com/gorilla/mux"
)

func main() {
	config.LoadServer() // load env var from .env

	db := mysql.LoadDB(os.Getenv("MYSQL_DSN"))
	defer db.Close()

	mongoDB := mongo.LoadDB()

	logger := logger.Load()

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Panic(logger))
	api.Use(middleware.CheckJWT(user.NewMySQLSessionRepo(db)))

	routing.InitRoutes(api, db, mongoDB, logger)
	routing.ServeUploads(r)
	routing.StartServer(r) // serves on localhost:8082
}
