package devtools

import (
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/Aidin1998/apihub/common/errors"
)

const (
	totpPeriod   = 30
	totpSkew     = 1
	totpDigits   = otp.DigitsSix
	totpSecretSz = 20
)

type TOTPKey struct {
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
	Secret      string `json:"secret"`
	URL         string `json:"otpauth_url"`
	CurrentCode string `json:"current_code"`
	Period      uint   `json:"period"`
}

// GenerateTOTP creates a fresh TOTP secret along with its otpauth URL and
// the code valid at now.
func GenerateTOTP(issuer, account string, now time.Time) (TOTPKey, error) {
	issuer, account = strings.TrimSpace(issuer), strings.TrimSpace(account)
	if issuer == "" || account == "" {
		return TOTPKey{}, errors.Invalid.Explain("'issuer' and 'account_name' are required")
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: account,
		Period:      totpPeriod,
		SecretSize:  totpSecretSz,
		Digits:      totpDigits,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return TOTPKey{}, errors.Internal.Explain("failed to generate TOTP key").Wrap(err)
	}
	code, err := totp.GenerateCode(key.Secret(), now)
	if err != nil {
		return TOTPKey{}, errors.Internal.Explain("failed to generate TOTP code").Wrap(err)
	}

	return TOTPKey{
		Issuer:      issuer,
		AccountName: account,
		Secret:      key.Secret(),
		URL:         key.URL(),
		CurrentCode: code,
		Period:      totpPeriod,
	}, nil
}

// VerifyTOTP checks code against secret at now, allowing one period of skew.
func VerifyTOTP(secret, code string, now time.Time) (bool, error) {
	valid, err := totp.ValidateCustom(strings.TrimSpace(code), strings.ToUpper(strings.TrimSpace(secret)), now, totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    totpDigits,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		if err == otp.ErrValidateInputInvalidLength {
			return false, nil
		}
		return false, errors.Invalid.Explain("Invalid TOTP secret or code: %s", err.Error())
	}
	return valid, nil
}
