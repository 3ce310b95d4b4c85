package httpapi

import (
	"net/http"

	"github.com/fullsco/fullsco/internal/catalog"
	"github.com/fullsco/fullsco/internal/logging"
	"github.com/fullsco/fullsco/internal/markdown"
	"github.com/fullsco/fullsco/internal/media"
	"github.com/fullsco/fullsco/internal/menus"
	"github.com/fullsco/fullsco/internal/pages"
	"github.com/fullsco/fullsco/internal/partners"
	"github.com/fullsco/fullsco/internal/posts"
	"github.com/fullsco/fullsco/internal/scholarships"
	"github.com/fullsco/fullsco/internal/settings"
	"github.com/fullsco/fullsco/internal/stats"
	"github.com/fullsco/fullsco/internal/stories"
	"github.com/fullsco/fullsco/internal/subscribers"
	"github.com/fullsco/fullsco/internal/users"
)

// Services collects everything the API serves.
type Services struct {
	Catalog      *catalog.Services
	Scholarships *scholarships.Service
	Posts        *posts.Service
	Pages        *pages.Service
	Stories      *stories.Service
	Stats        *stats.Service
	Partners     *partners.Service
	Subscribers  *subscribers.Service
	Users        *users.Service
	Media        *media.Service
	Menus        *menus.Service
	Settings     *settings.Service
}

// API owns the route table and request handling.
type API struct {
	catalog      *catalog.Services
	scholarships *scholarships.Service
	posts        *posts.Service
	pages        *pages.Service
	stories      *stories.Service
	stats        *stats.Service
	partners     *partners.Service
	subscribers  *subscribers.Service
	users        *users.Service
	media        *media.Service
	menus        *menus.Service
	settings     *settings.Service
	render       *markdown.Renderer
	log          logging.Logger
}

func New(svcs Services, log logging.Logger) *API {
	if log == nil {
		log = logging.NoOp()
	}
	return &API{
		catalog:      svcs.Catalog,
		scholarships: svcs.Scholarships,
		posts:        svcs.Posts,
		pages:        svcs.Pages,
		stories:      svcs.Stories,
		stats:        svcs.Stats,
		partners:     svcs.Partners,
		subscribers:  svcs.Subscribers,
		users:        svcs.Users,
		media:        svcs.Media,
		menus:        svcs.Menus,
		settings:     svcs.Settings,
		render:       markdown.NewRenderer(),
		log:          log,
	}
}

// Register installs every route on mux.
func (api *API) Register(mux *http.ServeMux) {
	api.registerAuthRoutes(mux)
	api.registerCatalogRoutes(mux)
	api.registerScholarshipRoutes(mux)
	api.registerPostRoutes(mux)
	api.registerPageRoutes(mux)
	api.registerStoryRoutes(mux)
	api.registerStatRoutes(mux)
	api.registerPartnerRoutes(mux)
	api.registerSubscriberRoutes(mux)
	api.registerUserRoutes(mux)
	api.registerMediaRoutes(mux)
	api.registerMenuRoutes(mux)
	api.registerSettingRoutes(mux)
}

// Handler returns the fully routed http.Handler.
func (api *API) Handler() http.Handler {
	mux := http.NewServeMux()
	api.Register(mux)
	return mux
}
