package repository

// Repositories is a container for all repository instances.
type Repositories struct {
	Users          *UserRepository
	Advertisements *AdvertisementRepository
}

// NewRepositories constructs the repository container.
func NewRepositories() *Repositories {
	return &Repositories{
		Users:          NewUserRepository(),
		Advertisements: NewAdvertisementRepository(),
	}
}
