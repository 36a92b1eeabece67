package services

import (
	"context"
	"strings"

	"salonpro-dashboard/models"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// SettingsSnapshot is the raw material of the settings page.
type SettingsSnapshot struct {
	Salon   *models.Salon
	User    *models.User
	Address *models.Address
}

// FetchSettings loads the salon, the signed-in user and their addresses
// concurrently.
func (c *BackendClient) FetchSettings(ctx context.Context, token, salonID string) (*SettingsSnapshot, error) {
	var (
		salon     *models.Salon
		user      *models.User
		addresses []models.Address
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		salon, err = c.GetSalon(gctx, token, salonID)
		return err
	})
	g.Go(func() error {
		var err error
		user, err = c.Me(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		addresses, err = c.ListAddresses(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &SettingsSnapshot{
		Salon:   salon,
		User:    user,
		Address: PickSalonAddress(salon, addresses),
	}, nil
}

// PickSalonAddress prefers the address the salon points at, then one owned
// by the salon, then the first one.
func PickSalonAddress(salon *models.Salon, addresses []models.Address) *models.Address {
	if len(addresses) == 0 {
		return nil
	}
	if salon != nil {
		for i := range addresses {
			if salon.AddressID != "" && addresses[i].ID == salon.AddressID {
				return &addresses[i]
			}
		}
		for i := range addresses {
			if addresses[i].SalonID != "" && addresses[i].SalonID == salon.ID {
				return &addresses[i]
			}
		}
	}
	return &addresses[0]
}

// MergeBusinessInfo builds the settings view. Contact phone and email fall
// back from the salon to the owner.
func MergeBusinessInfo(s *SettingsSnapshot) models.BusinessInfo {
	var info models.BusinessInfo
	if s == nil {
		return info
	}
	if s.User != nil {
		info.OwnerName = s.User.Name
		info.OwnerEmail = s.User.Email
		info.OwnerPhone = s.User.Phone
	}
	if s.Salon != nil {
		info.SalonID = s.Salon.ID
		info.Name = s.Salon.Name
		info.Description = s.Salon.Description
		info.Phone = s.Salon.Phone
		info.Email = s.Salon.Email
	}
	if info.Phone == "" {
		info.Phone = info.OwnerPhone
	}
	if info.Email == "" {
		info.Email = info.OwnerEmail
	}
	if s.Address != nil {
		info.AddressID = s.Address.ID
		info.Street = s.Address.Street
		info.City = s.Address.City
		info.State = s.Address.State
		info.PostalCode = s.Address.PostalCode
		info.Country = s.Address.Country
	}
	return info
}

// SettingsPlan lists the field changes per owning record. Empty maps mean the
// record is left alone.
type SettingsPlan struct {
	Salon         map[string]interface{}
	User          map[string]interface{}
	Address       map[string]interface{}
	CreateAddress bool
}

func (p SettingsPlan) Empty() bool {
	return len(p.Salon) == 0 && len(p.User) == 0 && len(p.Address) == 0
}

// PlanSettingsUpdate compares the patch with the stored records and keeps
// only fields whose value actually changes. Salon contact fields are compared
// with the salon's own values, not the owner fallback shown in the view.
func PlanSettingsUpdate(snapshot *SettingsSnapshot, patch models.BusinessInfoPatch) SettingsPlan {
	current := MergeBusinessInfo(snapshot)
	var salonPhone, salonEmail string
	if snapshot != nil && snapshot.Salon != nil {
		salonPhone = snapshot.Salon.Phone
		salonEmail = snapshot.Salon.Email
	}

	plan := SettingsPlan{
		Salon:   map[string]interface{}{},
		User:    map[string]interface{}{},
		Address: map[string]interface{}{},
	}
	set := func(target map[string]interface{}, key string, next *string, cur string) {
		if next == nil {
			return
		}
		v := strings.TrimSpace(*next)
		if v != cur {
			target[key] = v
		}
	}

	set(plan.Salon, "name", patch.Name, current.Name)
	set(plan.Salon, "description", patch.Description, current.Description)
	set(plan.Salon, "phone", patch.Phone, salonPhone)
	set(plan.Salon, "email", patch.Email, salonEmail)

	set(plan.User, "name", patch.OwnerName, current.OwnerName)
	set(plan.User, "phone", patch.OwnerPhone, current.OwnerPhone)

	set(plan.Address, "street", patch.Street, current.Street)
	set(plan.Address, "city", patch.City, current.City)
	set(plan.Address, "state", patch.State, current.State)
	set(plan.Address, "postalCode", patch.PostalCode, current.PostalCode)
	set(plan.Address, "country", patch.Country, current.Country)

	if len(plan.Address) > 0 && current.AddressID == "" {
		plan.CreateAddress = true
		plan.Address["salonId"] = current.SalonID
		for key, v := range map[string]string{
			"street":     current.Street,
			"city":       current.City,
			"state":      current.State,
			"postalCode": current.PostalCode,
			"country":    current.Country,
		} {
			if _, ok := plan.Address[key]; !ok {
				plan.Address[key] = v
			}
		}
	}
	return plan
}

// ApplySettings sends the plan. A new address is created first so the salon
// can point at it in the same update.
func (c *BackendClient) ApplySettings(ctx context.Context, token string, current models.BusinessInfo, plan SettingsPlan) error {
	if len(plan.Address) > 0 {
		if plan.CreateAddress {
			addr, err := c.CreateAddress(ctx, token, plan.Address)
			if err != nil {
				return err
			}
			if addr != nil && addr.ID != "" {
				plan.Salon["addressId"] = addr.ID
			}
		} else if _, err := c.UpdateAddress(ctx, token, current.AddressID, plan.Address); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	if len(plan.Salon) > 0 {
		g.Go(func() error {
			_, err := c.UpdateSalon(gctx, token, current.SalonID, plan.Salon)
			return errors.WithMessage(err, "update salon")
		})
	}
	if len(plan.User) > 0 {
		g.Go(func() error {
			_, err := c.UpdateMe(gctx, token, plan.User)
			return errors.WithMessage(err, "update owner")
		})
	}
	return g.Wait()
}
