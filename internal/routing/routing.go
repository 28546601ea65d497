package routing

import (
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"geotodo/pkg/handlers"
	"geotodo/pkg/task"
	"geotodo/pkg/user"
)

const (
	listenAddr = ":8082"
	uploadsDir = "./uploads"
)

func InitRoutes(api *mux.Router, db *sql.DB, mongoDB *mongo.Database, logger *slog.Logger) {

	sessionRepo := user.NewMySQLSessionRepo(db)

	userService := user.NewService(user.NewMySQLRepo(db), sessionRepo)
	authHandler := handlers.NewAuthHandler(userService, logger)

	taskService := task.NewService(task.NewMongoRepo(mongoDB))
	todoHandler := handlers.NewTodoHandler(taskService, logger)

	imageHandler := handlers.NewImageHandler(uploadsDir, "http://localhost"+listenAddr, logger)

	/* -+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+ */

	authRouter := api.PathPrefix("/auth").Subrouter()
	todosRouter := api.PathPrefix("/todos").Subrouter()

	/* auth routers */
	authRouter.HandleFunc("/login", authHandler.Login).Methods("POST").Name("login")
	authRouter.HandleFunc("/register", authHandler.Register).Methods("POST").Name("register")

	/* todos routers */
	todosRouter.HandleFunc("", todoHandler.GetTodos).Methods("GET")
	todosRouter.HandleFunc("", todoHandler.CreateTodo).Methods("POST")
	todosRouter.HandleFunc("/{task_id:[a-zA-Z0-9]+}", todoHandler.UpdateTodo).Methods("PUT")
	todosRouter.HandleFunc("/{task_id:[a-zA-Z0-9]+}", todoHandler.DeleteTodo).Methods("DELETE")

	/* image routers */
	api.HandleFunc("/images", imageHandler.Upload).Methods("POST")
}

// ServeUploads exposes stored photos under the URLs the image handler mints.
func ServeUploads(r *mux.Router) {
	fs := http.FileServer(http.Dir(uploadsDir))
	r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", fs))
}

func StartServer(r *mux.Router) {
	fmt.Println("\n\033[32m", "The server is running on http://localhost"+listenAddr, "\033[0m")
	if err := http.ListenAndServe(listenAddr, r); err != nil {
		log.Fatal("Server failed:", err)
	}
}
