package domain

// DefaultCalculationParams returns the built-in calculation settings used
// when no persisted configuration exists yet.
func DefaultCalculationParams() CalculationParams {
	return CalculationParams{
		ParamWorkingDaysPerMonth: 20.0,
		ParamWorkingHoursPerDay:  8.0,
		ParamCurrencySymbol:      "€",
		ParamRiskMargin:          0.1,
		ParamDefaultRateG1:       350.0,
		ParamDefaultRateG2:       500.0,
		ParamDefaultRateTA:       420.0,
		ParamDefaultRatePM:       600.0,
	}
}

// DefaultGlobalConfig builds the seed configuration for a first run:
// a small supplier/resource/category set covering every role so the
// estimation flow works before anything is customized.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Suppliers: []ResourceEntry{
			{ID: "sup-alfa-g1", Name: "Alfa Consulting", Role: RoleG1, Department: "Delivery", RealRate: 320, OfficialRate: 380, IsGlobal: true, Status: StatusActive},
			{ID: "sup-alfa-g2", Name: "Alfa Consulting", Role: RoleG2, Department: "Delivery", RealRate: 480, OfficialRate: 550, IsGlobal: true, Status: StatusActive},
			{ID: "sup-borea-g2", Name: "Borea Systems", Role: RoleG2, Department: "Engineering", RealRate: 520, OfficialRate: 590, IsGlobal: true, Status: StatusActive},
			{ID: "sup-borea-ta", Name: "Borea Systems", Role: RoleTA, Department: "Engineering", RealRate: 410, OfficialRate: 460, IsGlobal: true, Status: StatusActive},
		},
		InternalResources: []ResourceEntry{
			{ID: "int-analysis-ta", Name: "Analysis Office", Role: RoleTA, Department: "IT", RealRate: 400, OfficialRate: 430, IsGlobal: true, Status: StatusActive},
			{ID: "int-pmo-pm", Name: "PMO", Role: RolePM, Department: "IT", RealRate: 580, OfficialRate: 620, IsGlobal: true, Status: StatusActive},
		},
		Categories: []Category{
			{
				ID: "cat-backend", Name: "Backend", Description: "Server-side services and integrations",
				Status: StatusActive, IsGlobal: true,
				FeatureTypes: []FeatureType{
					{ID: "ft-api", Name: "API endpoint", AverageMDs: 3},
					{ID: "ft-batch", Name: "Batch job", AverageMDs: 5},
					{ID: "ft-integration", Name: "External integration", AverageMDs: 8},
				},
			},
			{
				ID: "cat-frontend", Name: "Frontend", Description: "User-facing screens and flows",
				Status: StatusActive, IsGlobal: true,
				FeatureTypes: []FeatureType{
					{ID: "ft-screen", Name: "Screen", AverageMDs: 4},
					{ID: "ft-report", Name: "Report", AverageMDs: 2.5},
				},
			},
			{
				ID: "cat-data", Name: "Data", Description: "Migrations and data plumbing",
				Status: StatusActive, IsGlobal: true,
				FeatureTypes: []FeatureType{
					{ID: "ft-migration", Name: "Migration", AverageMDs: 6},
				},
			},
		},
		CalculationParams: DefaultCalculationParams(),
	}
}

// DefaultPhaseDefinitions returns the ordered built-in phase list.
// Exactly one phase (development) is calculated: its man-days derive
// from the feature list and are never user-editable.
func DefaultPhaseDefinitions() []PhaseDefinition {
	return []PhaseDefinition{
		{ID: "functional-analysis", Name: "Functional Analysis", Type: "analysis",
			DefaultEffort: RoleValues{G1: 0, G2: 20, TA: 60, PM: 20}, Editable: true},
		{ID: "technical-analysis", Name: "Technical Analysis", Type: "analysis",
			DefaultEffort: RoleValues{G1: 10, G2: 50, TA: 30, PM: 10}, Editable: true},
		{ID: DevelopmentPhaseID, Name: "Development", Type: "build",
			DefaultEffort: RoleValues{G1: 45, G2: 45, TA: 0, PM: 10}, Editable: true, Calculated: true},
		{ID: "integration-tests", Name: "Integration Tests", Type: "test",
			DefaultEffort: RoleValues{G1: 40, G2: 30, TA: 20, PM: 10}, Editable: true},
		{ID: "uat", Name: "UAT Support", Type: "test",
			DefaultEffort: RoleValues{G1: 30, G2: 30, TA: 25, PM: 15}, Editable: true},
		{ID: "consolidation", Name: "Consolidation", Type: "stabilization",
			DefaultEffort: RoleValues{G1: 35, G2: 40, TA: 10, PM: 15}, Editable: true},
		{ID: "post-go-live", Name: "Post Go-Live", Type: "support",
			DefaultEffort: RoleValues{G1: 50, G2: 30, TA: 0, PM: 20}, Editable: true},
	}
}
