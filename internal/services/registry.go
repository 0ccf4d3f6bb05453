package services

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AuthService        *AuthService
	UserService        *UserService
	SkillService       *SkillService
	PostService        *PostService
	PropositionService *PropositionService
	ReviewService      *ReviewService
}
