package jobs

import (
	"context"

	"rentify-backend/internal/domain"
	"rentify-backend/internal/logger"
)

// SendRentalStartReminders notifies renters whose rental starts
// tomorrow. A rental "starts" tomorrow when its day set contains
// tomorrow but not today, so multi-day rentals are reminded once.
func (jr *JobRunner) SendRentalStartReminders() {
	jr.runWithRecovery("SendRentalStartReminders", func() {
		ctx := context.Background()
		today := domain.DayKeyFromTime(jr.now().UTC())
		tomorrow := today.AddDays(1)

		rentals, err := jr.rentalRepo.ListByDay(ctx, tomorrow)
		if err != nil {
			logger.Error("Listing rentals for start reminders failed", "error", err)
			return
		}

		sent := 0
		for _, rental := range rentals {
			days, err := rental.Days()
			if err != nil {
				logger.Warn("Skipping rental with malformed dates", "rental_id", rental.ID, "error", err)
				continue
			}
			if days.Has(today) {
				continue
			}

			renter, err := jr.userRepo.GetByID(ctx, rental.UserID)
			if err != nil {
				logger.Warn("Renter lookup failed", "rental_id", rental.ID, "user_id", rental.UserID, "error", err)
				continue
			}
			item, err := jr.itemRepo.GetByID(ctx, rental.ItemID)
			if err != nil {
				logger.Warn("Item lookup failed", "rental_id", rental.ID, "item_id", rental.ItemID, "error", err)
				continue
			}

			if renter.FCMToken != "" {
				_ = jr.services.Push.Send(ctx, renter.FCMToken,
					"Your rental starts tomorrow",
					item.Name+" is reserved for you starting "+tomorrow.String())
			}
			if err := jr.services.Email.SendRentalStartReminder(ctx, renter.Email, renter.Username, item.Name, tomorrow.String()); err != nil {
				logger.Warn("Start reminder email failed", "rental_id", rental.ID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Rental start reminders sent", "count", sent)
	})
}

// SendReturnReminders notifies owners whose item is due back today. A
// rental "ends" today when its day set contains today but not tomorrow.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()
		today := domain.DayKeyFromTime(jr.now().UTC())
		tomorrow := today.AddDays(1)

		rentals, err := jr.rentalRepo.ListByDay(ctx, today)
		if err != nil {
			logger.Error("Listing rentals for return reminders failed", "error", err)
			return
		}

		sent := 0
		for _, rental := range rentals {
			days, err := rental.Days()
			if err != nil {
				logger.Warn("Skipping rental with malformed dates", "rental_id", rental.ID, "error", err)
				continue
			}
			if days.Has(tomorrow) {
				continue
			}

			item, err := jr.itemRepo.GetByID(ctx, rental.ItemID)
			if err != nil {
				logger.Warn("Item lookup failed", "rental_id", rental.ID, "item_id", rental.ItemID, "error", err)
				continue
			}
			owner, err := jr.userRepo.GetByID(ctx, item.OwnerID)
			if err != nil {
				logger.Warn("Owner lookup failed", "rental_id", rental.ID, "owner_id", item.OwnerID, "error", err)
				continue
			}

			if owner.FCMToken != "" {
				_ = jr.services.Push.Send(ctx, owner.FCMToken,
					"Item due back today",
					item.Name+" should be returned to you today")
			}
			if err := jr.services.Email.SendReturnReminder(ctx, owner.Email, owner.Username, item.Name); err != nil {
				logger.Warn("Return reminder email failed", "rental_id", rental.ID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Return reminders sent", "count", sent)
	})
}
