package services

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/openbites/cookbook/pkg/internal/database"
	"github.com/openbites/cookbook/pkg/internal/models"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

func GetAccount(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, &NotFoundError{Resource: "account"}
		}
		return account, fmt.Errorf("unable to get account: %v", err)
	}
	return account, nil
}

func GetAccountByUsername(username string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, &NotFoundError{Resource: "account"}
		}
		return account, fmt.Errorf("unable to get account: %v", err)
	}
	return account, nil
}

func CountAccount() (int64, error) {
	var count int64
	if err := database.C.Model(&models.Account{}).Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}

func ListAccount(take int, offset int) ([]models.Account, error) {
	if take > 100 {
		take = 100
	}

	var accounts []models.Account
	err := database.C.Limit(take).Offset(offset).Order("id ASC").Find(&accounts).Error
	return accounts, err
}

func NewAccount(username, email, firstName, lastName, password string) (models.Account, error) {
	var account models.Account
	if !usernamePattern.MatchString(username) {
		return account, &ValidationError{Field: "username", Reason: "contains characters outside of letters, digits and .@+-"}
	}

	var count int64
	if err := database.C.Model(&models.Account{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return account, fmt.Errorf("unable to count existing account: %v", err)
	}
	if count > 0 {
		return account, &ConflictError{Resource: "account"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return account, fmt.Errorf("unable to hash password: %v", err)
	}

	account = models.Account{
		Username:  username,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Password:  string(hash),
	}

	if err := database.C.Create(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

func AuthAccount(username, password string) (models.Account, error) {
	account, err := GetAccountByUsername(username)
	if err != nil {
		return account, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return account, fmt.Errorf("invalid credentials")
	}
	return account, nil
}

func IssueToken(account models.Account) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(int(account.ID)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * 24 * time.Hour)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(viper.GetString("security.jwt_secret")))
}

func ParseToken(raw string) (uint, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(viper.GetString("security.jwt_secret")), nil
	})
	if err != nil {
		return 0, err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return 0, err
	}

	id, err := strconv.Atoi(subject)
	if err != nil {
		return 0, fmt.Errorf("malformed token subject: %v", err)
	}
	return uint(id), nil
}

// DeleteAccount removes the account and its relation rows; authored recipes
// stay behind with a cleared author reference.
func DeleteAccount(account models.Account) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Recipe{}).
			Where("author_id = ?", account.ID).
			Update("author_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Favorite{}, "account_id = ?", account.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ShoppingCart{}, "account_id = ?", account.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Subscription{}, "follower_id = ? OR author_id = ?", account.ID, account.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&account).Error
	})
}
