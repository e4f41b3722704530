package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the dashboard.
	RouteRoot = "/"
	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteProfile is the signed-in administrator's profile.
	RouteProfile = "/profile"
	// RouteHealth is the health check route.
	RouteHealth = "/health"
	// RouteStatic serves embedded assets.
	RouteStatic = "/static/*"

	// RouteBlogs is the blogs manager.
	RouteBlogs = "/blogs"
	// RoutePortfolios is the portfolios manager.
	RoutePortfolios = "/portfolios"
	// RouteProjects is the projects manager.
	RouteProjects = "/projects"
	// RouteBlogCategories is the blog categories page.
	RouteBlogCategories = "/blog-categories"
	// RoutePortfolioCategories is the portfolio categories page.
	RoutePortfolioCategories = "/portfolio-categories"
	// RouteTechnologyCategories is the technology categories page.
	RouteTechnologyCategories = "/technology-categories"

	// RouteSuffixNew is the suffix for create forms.
	RouteSuffixNew = "/new"
	// RouteSuffixEdit is the suffix for edit forms.
	RouteSuffixEdit = "/{id}/edit"
	// RouteSuffixLive is the liveness probe suffix.
	RouteSuffixLive = "/live"
	// RouteSuffixReady is the readiness probe suffix.
	RouteSuffixReady = "/ready"
)

// Sidebar entries.
const (
	NavDashboard           = "dashboard"
	NavBlogs               = "blogs"
	NavPortfolios          = "portfolios"
	NavProjects            = "projects"
	NavBlogCategories      = "blog-categories"
	NavPortfolioCategories = "portfolio-categories"
	NavTechnologies        = "technology-categories"
	NavProfile             = "profile"
)

// Template names.
const (
	TemplateLogin      = "auth/login"
	TemplateDashboard  = "admin/dashboard"
	TemplateBlogs      = "admin/blogs"
	TemplateBlogForm   = "admin/blog_form"
	TemplatePortfolios = "admin/portfolios"
	TemplatePortfolio  = "admin/portfolio_form"
	TemplateCategories = "admin/categories"
	TemplateProfile    = "admin/profile"
)

