package routes

import (
	"net/http"

	"blogcms/app/config"
	"blogcms/app/controllers"
	"blogcms/app/logs"
	"blogcms/app/middleware"
	"blogcms/app/repositories"
	"blogcms/app/services"

	"github.com/gorilla/mux"
)

// SetupRoutes defines the blog's routes on top of postRepo and returns the
// router.
func SetupRoutes(cfg *config.Config, postRepo repositories.PostRepository) (*mux.Router, error) {
	if cfg.SecretKey == "" {
		logs.Warn("SECRET_KEY not set, form submissions are not CSRF protected", nil)
	}
	csrfProtect, err := middleware.CSRF(cfg.SecretKey, cfg.SecureCookies)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(csrfProtect)

	postController := controllers.NewPostController(services.NewPostService(postRepo))
	pageController := controllers.NewPageController()

	// Serve static files
	if cfg.StaticDir != "" {
		router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	}

	router.HandleFunc("/", postController.Index).Methods("GET")
	router.HandleFunc("/post/{id:[0-9]+}", postController.Show).Methods("GET")
	router.HandleFunc("/new-post", postController.New).Methods("GET")
	router.HandleFunc("/new-post", postController.Create).Methods("POST")
	router.HandleFunc("/edit-post/{id:[0-9]+}", postController.Edit).Methods("GET")
	router.HandleFunc("/edit-post/{id:[0-9]+}", postController.Update).Methods("POST")
	router.HandleFunc("/delete/{id:[0-9]+}", postController.Delete).Methods("GET")

	router.HandleFunc("/about", pageController.About).Methods("GET")
	router.HandleFunc("/contact", pageController.Contact).Methods("GET")

	return router, nil
}
