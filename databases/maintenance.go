package databases

//go generate: mockery --name MaintenanceDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fleetworks/fleet-maintenance-api/models"
)

const maintenanceName = "maintenance_logs"

// MaintenanceDatabase contains the methods to use with the maintenance log
// collection
type MaintenanceDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.MaintenanceRecord, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.MaintenanceRecord, error)
	InsertOne(ctx context.Context, record models.MaintenanceRecord) (interface{}, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) error
}

type maintenanceDatabase struct {
	db DatabaseHelper
}

// NewMaintenanceDatabase initializes a new instance of the maintenance
// database with the provided db connection
func NewMaintenanceDatabase(db DatabaseHelper) MaintenanceDatabase {
	return &maintenanceDatabase{
		db: db,
	}
}

func (c *maintenanceDatabase) FindOne(ctx context.Context, filter interface{}) (*models.MaintenanceRecord, error) {
	record := &models.MaintenanceRecord{}
	err := c.db.Collection(maintenanceName).FindOne(ctx, filter).Decode(&record)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (c *maintenanceDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.MaintenanceRecord, error) {
	var records []models.MaintenanceRecord
	cursor, err := c.db.Collection(maintenanceName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	if err := cursor.Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *maintenanceDatabase) InsertOne(ctx context.Context, record models.MaintenanceRecord) (interface{}, error) {
	return c.db.Collection(maintenanceName).InsertOne(ctx, record)
}

func (c *maintenanceDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) error {
	return c.db.Collection(maintenanceName).UpdateOne(ctx, filter, update)
}
