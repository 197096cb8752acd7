// Package domain implements the VNPay gateway contract: parameter names,
// acknowledgement codes and the HMAC-SHA512 signature scheme.
package domain

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"math"
	"net/url"
	"strconv"
)

// VNPay parameter names
const (
	ParamSecureHash     = "vnp_SecureHash"
	ParamSecureHashType = "vnp_SecureHashType"
	ParamResponseCode   = "vnp_ResponseCode"
	ParamTxnRef         = "vnp_TxnRef"
	ParamAmount         = "vnp_Amount"
	ParamTransactionNo  = "vnp_TransactionNo"
	ParamBankCode       = "vnp_BankCode"
	ParamPayDate        = "vnp_PayDate"
)

// ResponseCodeSuccess is the provider's code for a successful payment
const ResponseCodeSuccess = "00"

// IPN acknowledgement codes returned to the gateway
const (
	RspCodeSuccess          = "00"
	RspCodeOrderNotFound    = "01"
	RspCodeAlreadyConfirmed = "02"
	RspCodeAmountInvalid    = "04"
	RspCodeInvalidSignature = "97"
	RspCodeUnknownError     = "99"
)

// Canonicalize encodes the parameters for signing: signature fields removed,
// keys sorted, standard query escaping. The gateway computes its signature
// over exactly this encoding.
func Canonicalize(params map[string]string) string {
	values := url.Values{}
	for key, value := range params {
		if key == ParamSecureHash || key == ParamSecureHashType {
			continue
		}
		values.Set(key, value)
	}
	// url.Values.Encode sorts by key
	return values.Encode()
}

// Sign computes the hex HMAC-SHA512 signature of the canonicalized parameters
func Sign(params map[string]string, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(Canonicalize(params)))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature recomputes the expected signature and compares it against
// the supplied vnp_SecureHash in constant time
func VerifySignature(params map[string]string, secret string) bool {
	supplied := params[ParamSecureHash]
	if supplied == "" {
		return false
	}
	expected := Sign(params, secret)
	return hmac.Equal([]byte(expected), []byte(supplied))
}

// GatewayAmount converts an order total to the provider's scaled integer
// representation (hundredths of a VND unit)
func GatewayAmount(total float64) int64 {
	return int64(math.Round(total * 100))
}

// AmountMatches parses the notified amount and compares it exactly against
// the order total under the provider's scale factor
func AmountMatches(notified string, total float64) bool {
	amount, err := strconv.ParseInt(notified, 10, 64)
	if err != nil {
		return false
	}
	return amount == GatewayAmount(total)
}
