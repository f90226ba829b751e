package auth

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"gorm.io/gorm"

	"campus-api/config"
	"campus-api/internal/listing"
	"campus-api/internal/util"
)

type AuthService struct {
	DB  *gorm.DB
	CFG *config.Config
}

var sendMail = smtp.SendMail

func (s *AuthService) CreateUser(user User) (*User, error) {
	if user.Role == "" {
		user.Role = RoleStudent
	}

	if err := s.DB.Create(&user).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") ||
			strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, errors.New("an account with this email already exists")
		}
		return nil, err
	}

	return &user, nil
}

func (s *AuthService) GetUser(email string) (*User, error) {
	var user User
	result := s.DB.Where("email = ?", email).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (s *AuthService) GetUserByID(id string) (*User, error) {
	var user User
	result := s.DB.Where("id = ?", id).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// ListUsers returns one page of users within the given school. Unset filters
// are not applied.
func (s *AuthService) ListUsers(schoolID string, f ListFilters, p listing.Params) (listing.Result[User], error) {
	q := s.DB.Model(&User{}).Where("school_id = ?", schoolID)
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("firstname LIKE ? OR lastname LIKE ? OR email LIKE ?", like, like, like)
	}
	return listing.Find[User](q, "created_at DESC", p)
}

func (s *AuthService) UpdateUser(schoolID, id string, in UpdateUserInput) (*User, error) {
	updates := map[string]any{}
	if in.FirstName != nil {
		updates["firstname"] = *in.FirstName
	}
	if in.LastName != nil {
		updates["lastname"] = *in.LastName
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Role != nil {
		updates["role"] = *in.Role
	}
	if in.SchoolID != nil {
		updates["school_id"] = *in.SchoolID
	}

	var user User
	if err := s.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&user).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

func (s *AuthService) DeleteUser(schoolID, id string) error {
	res := s.DB.Where("id = ? AND school_id = ?", id, schoolID).Delete(&User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *AuthService) SendOTP(email string) (*User, string, error) {
	var user User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, "", errors.New("user not found")
	}

	otp := fmt.Sprintf("%06d", util.RandomInt(100000, 999999))

	record := OTP{
		Email: email,
		Code:  otp,
	}
	if err := s.DB.Create(&record).Error; err != nil {
		return nil, "", err
	}

	from := s.CFG.GmailUser
	password := s.CFG.GmailPass
	to := []string{user.Email}
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	subject := "OTP to change password"
	body := fmt.Sprintf(
		"Hi there,\n\n"+
			"Your OTP to change the password is: %s\n\n"+
			"This code will expire in 10 minutes.\n\n"+
			"Thank you.",
		otp,
	)

	message := []byte(fmt.Sprintf(
		"To: %s\r\n"+
			"Subject: %s\r\n"+
			"\r\n"+
			"%s",
		user.Email,
		subject,
		body,
	))

	smtpAuth := smtp.PlainAuth("", from, password, smtpHost)
	if err := sendMail(smtpHost+":"+smtpPort, smtpAuth, from, to, message); err != nil {
		return nil, "", errors.New("failed to send OTP email")
	}

	return &user, otp, nil
}

func (s *AuthService) ResetPassword(email, code, newPassword string) (*User, error) {
	var otp OTP
	if err := s.DB.Where("email = ? AND code = ?", email, code).
		Order("created_at desc").First(&otp).Error; err != nil {
		return nil, errors.New("invalid OTP")
	}

	var user User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, errors.New("user not found")
	}

	if time.Since(otp.CreatedAt) > 10*time.Minute {
		return nil, errors.New("OTP expired")
	}

	hashed, err := util.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(&User{}).Where("email = ?", email).
		Update("password", hashed).Error; err != nil {
		return nil, err
	}

	return &user, nil
}
