package navigation

// DefaultRouteSpecs is the route table of the marketplace client.
func DefaultRouteSpecs() []RouteSpec {
	return []RouteSpec{
		{Path: "/", Name: "home"},
		{Path: "/login", Name: "login"},
		{Path: "/register", Name: "register"},
		{Path: "/browse-carers", Name: "browse-carers", PublicPreviewForEmployers: true},
		{Path: "/carers/{id}", Name: "carer-profile", PublicPreviewForEmployers: true},
		{Path: "/jobseeker-dashboard", Name: "jobseeker-dashboard", RequiresAuth: true},
		{Path: "/my-profile", Name: "my-profile", RequiresAuth: true},
		{Path: "/applications", Name: "my-applications", RequiresAuth: true},
		{Path: "/post-job", Name: "post-job", RequiresAuth: true, EmployerOnly: true},
		{Path: "/employer-dashboard", Name: "employer-dashboard", RequiresAuth: true, EmployerOnly: true},
		{Path: "/employer/applications", Name: "employer-applications", RequiresAuth: true, EmployerOnly: true},
		{Path: "/reviews/{jobseekerId}", Name: "review-jobseeker", RequiresAuth: true, EmployerOnly: true},
	}
}

// DefaultRouteTable compiles DefaultRouteSpecs.
func DefaultRouteTable() *RouteTable {
	return MustRouteTable(DefaultRouteSpecs())
}
