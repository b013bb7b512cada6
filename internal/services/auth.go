package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gowheels/gowheels-backend/internal/apperr"
	"github.com/gowheels/gowheels-backend/internal/models"
	"github.com/gowheels/gowheels-backend/internal/store"
	"github.com/gowheels/gowheels-backend/pkg/utils"
)

type SignupInput struct {
	Username       string `json:"username" binding:"required"`
	Password       string `json:"password" binding:"required,min=6"`
	Category       string `json:"category" binding:"required"`
	Name           string `json:"name" binding:"required"`
	DateOfBirth    string `json:"date_of_birth" binding:"required"` // YYYY-MM-DD
	ContactNumber  string `json:"contact_number"`
	PickupLocation string `json:"pickup_location"`

	// driver only
	CarNo       string  `json:"car_no"`
	CarModel    string  `json:"car_model"`
	CarType     string  `json:"car_type"`
	CabLocation string  `json:"cab_location"`
	Rating      float64 `json:"rating"`
	FCMToken    string  `json:"fcm_token"`
}

// Profile is the account plus whichever role profile it owns.
type Profile struct {
	User      *models.User      `json:"user"`
	Passenger *models.Passenger `json:"passenger,omitempty"`
	Driver    *models.Driver    `json:"driver,omitempty"`
}

type AuthService struct {
	store    store.Store
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(st store.Store, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{store: st, secret: secret, tokenTTL: tokenTTL}
}

// Signup creates the login and its role profile together.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*Profile, error) {
	category, ok := models.ParseCategory(in.Category)
	if !ok {
		return nil, apperr.InvalidRequest("category must be driver or passenger")
	}
	in.Username = strings.TrimSpace(in.Username)
	in.Name = strings.TrimSpace(in.Name)
	if in.Username == "" || in.Name == "" {
		return nil, apperr.InvalidRequest("username and name are required")
	}
	if len(in.Password) < 6 {
		return nil, apperr.InvalidRequest("password must be at least 6 characters")
	}
	dob, err := time.Parse(time.DateOnly, strings.TrimSpace(in.DateOfBirth))
	if err != nil {
		return nil, apperr.InvalidRequest("date_of_birth must be YYYY-MM-DD")
	}
	if category == models.CategoryDriver {
		if strings.TrimSpace(in.CarNo) == "" || in.CarModel == "" || in.CarType == "" {
			return nil, apperr.InvalidRequest("drivers must register a vehicle (car_no, car_model, car_type)")
		}
		if in.Rating < 0 || in.Rating > 5 {
			return nil, apperr.InvalidRequest("rating must be between 0 and 5")
		}
	}

	user := &models.User{Username: in.Username, Password: in.Password, Category: category}
	if err := user.HashPassword(); err != nil {
		return nil, err
	}

	profile := &Profile{User: user}
	err = s.store.Transact(ctx, func(tx store.Store) error {
		if err := tx.CreateUser(ctx, user); err != nil {
			return err
		}

		if category == models.CategoryPassenger {
			p := &models.Passenger{
				Username:       user.Username,
				Name:           in.Name,
				ContactNumber:  in.ContactNumber,
				PickupLocation: in.PickupLocation,
				DateOfBirth:    dob,
			}
			profile.Passenger = p
			return tx.CreatePassenger(ctx, p)
		}

		v := &models.Vehicle{
			CarNo:    strings.TrimSpace(in.CarNo),
			CarModel: in.CarModel,
			CarType:  in.CarType,
		}
		if err := tx.EnsureVehicle(ctx, v); err != nil {
			return err
		}
		d := &models.Driver{
			Username:      user.Username,
			Name:          in.Name,
			Rating:        in.Rating,
			CurrentStatus: models.DriverStatusOffDuty,
			CabLocation:   in.CabLocation,
			CarNo:         v.CarNo,
			DateOfBirth:   dob,
			FCMToken:      in.FCMToken,
		}
		if err := tx.CreateDriver(ctx, d); err != nil {
			return err
		}
		d.Vehicle = v
		profile.Driver = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// Login checks the password and issues an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *Profile, error) {
	user, err := s.store.GetUser(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", nil, apperr.Unauthorized("invalid username or password")
		}
		return "", nil, err
	}
	if err := user.CheckPassword(password); err != nil {
		return "", nil, apperr.Unauthorized("invalid username or password")
	}

	profile := &Profile{User: user}
	switch user.Category {
	case models.CategoryPassenger:
		if profile.Passenger, err = s.store.GetPassengerByUsername(ctx, user.Username); err != nil {
			return "", nil, err
		}
	case models.CategoryDriver:
		if profile.Driver, err = s.store.GetDriverByUsername(ctx, user.Username); err != nil {
			return "", nil, err
		}
	}

	token, err := utils.GenerateToken(s.secret, user.Username, string(user.Category), s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, profile, nil
}
