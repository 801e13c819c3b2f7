package routing

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"todoapp/internal/config"
	"todoapp/pkg/handlers"
	"todoapp/pkg/middleware"
	"todoapp/pkg/task"
	"todoapp/pkg/user"
)

func InitRoutes(r *mux.Router, cfg *config.Server, db *sql.DB, mongoDB *mongo.Database, logger *slog.Logger) {
	userService := user.NewService(user.NewMySQLRepo(db))
	authHandler := handlers.NewAuthHandler(userService, logger, cfg.JWTSecret, cfg.TokenTTL)

	taskService := task.NewService(task.NewMongoRepo(mongoDB))
	taskHandler := handlers.NewTaskHandler(taskService, logger)

	Register(r, cfg.JWTSecret, authHandler, taskHandler, logger)
}

// Register wires handlers onto r; split from InitRoutes so the routing table
// can be exercised without databases.
func Register(r *mux.Router, secret []byte, authHandler *handlers.AuthHandler, taskHandler *handlers.TaskHandler, logger *slog.Logger) {
	r.Use(middleware.Panic(logger))
	r.HandleFunc("/health", Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.CheckJWT(secret, logger))

	/* auth routers */
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST").Name("signup")
	api.HandleFunc("/auth/signin", authHandler.Signin).Methods("POST").Name("signin")

	/* task routers */
	tasks := api.PathPrefix("/{user_id}/tasks").Subrouter()
	tasks.HandleFunc("", taskHandler.ListTasks).Methods("GET")
	tasks.HandleFunc("", taskHandler.CreateTask).Methods("POST")
	tasks.HandleFunc("/{task_id}", taskHandler.GetTask).Methods("GET")
	tasks.HandleFunc("/{task_id}", taskHandler.UpdateTask).Methods("PUT")
	tasks.HandleFunc("/{task_id}", taskHandler.DeleteTask).Methods("DELETE")
	tasks.HandleFunc("/{task_id}/complete", taskHandler.ToggleComplete).Methods("PATCH")
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
