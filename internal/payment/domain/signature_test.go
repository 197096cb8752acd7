package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-hash-secret"

func callbackParams() map[string]string {
	return map[string]string{
		ParamTxnRef:        "ORD-1700000000000-a1b2c3d4e",
		ParamAmount:        "53000000",
		ParamResponseCode:  "00",
		ParamTransactionNo: "14225587",
		ParamBankCode:      "NCB",
	}
}

func TestCanonicalizeSortsAndExcludesSignatureFields(t *testing.T) {
	params := map[string]string{
		"vnp_TxnRef":        "ORD-1",
		"vnp_Amount":        "100",
		ParamSecureHash:     "deadbeef",
		ParamSecureHashType: "SHA512",
		"vnp_BankCode":      "NCB",
	}

	got := Canonicalize(params)

	assert.Equal(t, "vnp_Amount=100&vnp_BankCode=NCB&vnp_TxnRef=ORD-1", got)
}

func TestCanonicalizeQueryEscapesValues(t *testing.T) {
	params := map[string]string{
		"vnp_OrderInfo": "Thanh toan don hang",
	}

	assert.Equal(t, "vnp_OrderInfo=Thanh+toan+don+hang", Canonicalize(params))
}

func TestSignVerifyRoundTrip(t *testing.T) {
	params := callbackParams()
	params[ParamSecureHash] = Sign(params, testSecret)

	assert.True(t, VerifySignature(params, testSecret))
}

func TestVerifySignatureIgnoresHashTypeField(t *testing.T) {
	params := callbackParams()
	params[ParamSecureHash] = Sign(params, testSecret)
	params[ParamSecureHashType] = "SHA512"

	assert.True(t, VerifySignature(params, testSecret))
}

func TestVerifySignatureRejectsTamperedParam(t *testing.T) {
	params := callbackParams()
	params[ParamSecureHash] = Sign(params, testSecret)
	params[ParamAmount] = "1"

	assert.False(t, VerifySignature(params, testSecret))
}

func TestVerifySignatureRejectsWrongSecret(t *testing.T) {
	params := callbackParams()
	params[ParamSecureHash] = Sign(params, testSecret)

	assert.False(t, VerifySignature(params, "other-secret"))
}

func TestVerifySignatureRejectsMissingHash(t *testing.T) {
	assert.False(t, VerifySignature(callbackParams(), testSecret))
}

func TestSignIsStableAcrossParamOrder(t *testing.T) {
	a := map[string]string{"vnp_TxnRef": "ORD-1", "vnp_Amount": "100", "vnp_BankCode": "NCB"}
	b := map[string]string{"vnp_BankCode": "NCB", "vnp_Amount": "100", "vnp_TxnRef": "ORD-1"}

	require.Equal(t, Canonicalize(a), Canonicalize(b))
	assert.Equal(t, Sign(a, testSecret), Sign(b, testSecret))
}

func TestGatewayAmount(t *testing.T) {
	assert.Equal(t, int64(53000000), GatewayAmount(530000))
	assert.Equal(t, int64(12346), GatewayAmount(123.456))
}

func TestAmountMatches(t *testing.T) {
	assert.True(t, AmountMatches("53000000", 530000))
	assert.False(t, AmountMatches("53000001", 530000))
	assert.False(t, AmountMatches("not-a-number", 530000))
	assert.False(t, AmountMatches("", 530000))
}
