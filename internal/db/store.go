package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
)

// Store is the persistence surface handed to API modules. The scheduler's
// external collaborators (group, display, schedule and campaign
// repositories) are all served by this one interface; load/save errors
// propagate unchanged to the caller.
type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// group forest
	LoadGroupForest() ([]model.Group, error)
	SaveGroupForest(forest []model.Group) error

	// displays
	ListDisplays() ([]model.Display, error)
	GetDisplayByID(id string) (*model.Display, error)
	CreateDisplay(d model.Display) error
	UpdateDisplay(d model.Display) error
	DeleteDisplay(id string) error
	UnassignDisplays(groupIDs []string) (int, error)

	// campaigns
	ListCampaigns() ([]model.Campaign, error)
	GetCampaignByID(id string) (*model.Campaign, error)
	CreateCampaign(c model.Campaign) error
	UpdateCampaign(c model.Campaign) error
	SaveCampaigns(campaigns []model.Campaign) error
	DeleteCampaign(id string) error

	// group schedules
	LoadSchedules() ([]model.GroupSchedule, error)
	SaveSchedules(schedules []model.GroupSchedule) error

	// id generation
	NextDisplayID(installed time.Time) (string, error)
	NextCampaignID(start time.Time) (string, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(database *sqlx.DB) Store {
	if database == nil {
		database = DB
	}
	return &pgStore{db: database}
}
