package service

import (
	"github.com/deppfellow/ads-api/internal/lib/job"
	"github.com/deppfellow/ads-api/internal/repository"
	"github.com/deppfellow/ads-api/internal/server"
)

type Services struct {
	User          *UserService
	Advertisement *AdvertisementService
	Job           *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	// A nil *job.JobService inside the interface would not compare equal to nil.
	var welcome WelcomeEnqueuer
	if s.Job != nil {
		welcome = s.Job
	}

	return &Services{
		User:          NewUserService(s.DB, repos.Users, welcome, s.Logger),
		Advertisement: NewAdvertisementService(s.DB, repos.Advertisements),
		Job:           s.Job,
	}
}
