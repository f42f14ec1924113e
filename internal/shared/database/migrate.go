package database

import (
	"gorm.io/gorm"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/bookings"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/configuration"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/explorers"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/listings"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/payments"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/settlements"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/vendors"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&explorers.Explorer{},
		&vendors.Vendor{},
		&listings.Event{},
		&listings.Leisure{},
		&listings.Accommodation{},
		&listings.RoomType{},
		&listings.MovieShowtime{},
		&configuration.Configuration{},
		&bookings.Booking{},
		&payments.Payment{},
		&settlements.Settlement{},
	)
}
