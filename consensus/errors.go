package consensus

import "fmt"

// ErrorCode is a closed enumeration of admission verdicts. Every rule in
// this package returns at its first violation; ErrorCode values are the
// sole channel through which that violation is reported.
type ErrorCode string

const (
	Success ErrorCode = "success"

	CoinbaseTransaction ErrorCode = "coinbase_transaction"
	IsNotStandard       ErrorCode = "is_not_standard" // unreachable: is_standard() is hard-coded true
	Duplicate           ErrorCode = "duplicate"
	DoubleSpend         ErrorCode = "double_spend"
	InputNotFound       ErrorCode = "input_not_found"
	ValidateInputsFailed ErrorCode = "validate_inputs_failed"
	FeesOutOfRange      ErrorCode = "fees_out_of_range"

	EmptyTransaction        ErrorCode = "empty_transaction"
	SizeLimits              ErrorCode = "size_limits"
	OutputValueOverflow     ErrorCode = "output_value_overflow"
	TransactionVersionError ErrorCode = "transaction_version_error"
	NovaFeatureNotActivated ErrorCode = "nova_feature_not_activated"
	ScriptNotStandard       ErrorCode = "script_not_standard"

	InvalidCoinbaseScriptSize     ErrorCode = "invalid_coinbase_script_size"
	PreviousOutputNull            ErrorCode = "previous_output_null"
	InvalidInputScriptLockHeight  ErrorCode = "invalid_input_script_lock_height"
	InvalidOutputScriptLockHeight ErrorCode = "invalid_output_script_lock_height"
	AttenuationModelParamError    ErrorCode = "attenuation_model_param_error"
	AttachmentInvalid             ErrorCode = "attachment_invalid"

	AssetSymbolInvalid ErrorCode = "asset_symbol_invalid"
	DIDSymbolInvalid   ErrorCode = "did_symbol_invalid"
	MITSymbolInvalid   ErrorCode = "mit_symbol_invalid"

	AssetExist     ErrorCode = "asset_exist"
	AssetCertExist ErrorCode = "asset_cert_exist"
	MITExist       ErrorCode = "mit_exist"
	DIDExist       ErrorCode = "did_exist"
	DIDNotExist    ErrorCode = "did_not_exist"

	AddressRegisteredDID ErrorCode = "address_registered_did"
	DIDAddressNeeded     ErrorCode = "did_address_needed"
	DIDMultiTypeExist    ErrorCode = "did_multi_type_exist"
	DIDInputError        ErrorCode = "did_input_error"
	DIDAddressNotMatch   ErrorCode = "did_address_not_match"
	DIDSymbolNotMatch    ErrorCode = "did_symbol_not_match"

	AssetAmountNotEqual ErrorCode = "asset_amount_not_equal"
	AssetSymbolNotMatch ErrorCode = "asset_symbol_not_match"

	AssetCertError                    ErrorCode = "asset_cert_error"
	AssetCertNotProvided              ErrorCode = "asset_cert_not_provided"
	AssetCertIssueError               ErrorCode = "asset_cert_issue_error"
	AssetIssueError                   ErrorCode = "asset_issue_error"
	AssetSecondaryIssueError          ErrorCode = "asset_secondaryissue_error"
	AssetSecondaryIssueThresholdInvalid ErrorCode = "asset_secondaryissue_threshold_invalid"
	AssetSecondaryIssueShareNotEnough ErrorCode = "asset_secondaryissue_share_not_enough"

	// AssetDIDRegisterrNotMatch preserves the upstream rule name's
	// misspelling ("Registerr") verbatim rather than silently correcting
	// it, since the error code is part of the wire-visible verdict.
	AssetDIDRegisterrNotMatch ErrorCode = "asset_did_registerr_not_match"

	MITError         ErrorCode = "mit_error"
	MITRegisterError ErrorCode = "mit_register_error"
)

// ValidationError is the error value returned for a specific rule
// violation. Code identifies the rule; Msg is a human-readable detail used
// only for logs/debugging, never for control flow.
type ValidationError struct {
	Code ErrorCode
	Msg  string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func verr(code ErrorCode, msg string) error {
	return &ValidationError{Code: code, Msg: msg}
}

// CodeOf extracts the ErrorCode from err if it is a *ValidationError, and
// Success otherwise (so non-validation errors, e.g. nil-tx programmer
// errors, never get silently reported as a specific consensus code).
func CodeOf(err error) ErrorCode {
	if err == nil {
		return Success
	}
	if ve, ok := err.(*ValidationError); ok {
		return ve.Code
	}
	return Success
}
