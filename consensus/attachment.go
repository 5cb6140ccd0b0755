package consensus

import "fmt"

// AttachmentKind selects which of the eleven output kinds an Attachment
// carries. Exactly one payload field on Attachment is populated for a given
// Kind; the predicate accessors below (IsETP, IsAssetIssue, ...) are the only
// sanctioned way to read it, keeping illegal accesses unrepresentable.
type AttachmentKind uint8

const (
	AttachmentETP AttachmentKind = iota
	AttachmentMessage
	AttachmentAssetIssue
	AttachmentAssetSecondaryIssue
	AttachmentAssetTransfer
	AttachmentAssetCert
	AttachmentAssetCertIssue
	AttachmentAssetMITRegister
	AttachmentAssetMITTransfer
	AttachmentDIDRegister
	AttachmentDIDTransfer
)

// AttachmentVersion distinguishes attachment payload revisions. Version
// DIDVerify marks an asset-issue/secondary-issue/cert attachment whose
// issuer/owner must match an embedded to_did.
type AttachmentVersion uint8

const (
	AttachmentVersionDefault AttachmentVersion = iota
	AttachmentVersionDIDVerify
)

// BusinessKind is the latched, whole-transaction classification produced by
// connectInput as inputs are resolved.
type BusinessKind uint8

const (
	BusinessETP BusinessKind = iota
	BusinessAssetIssue
	BusinessAssetTransfer
	BusinessAssetCert
	BusinessAssetMIT
	BusinessDIDRegister
	BusinessDIDTransfer
)

// CertType enumerates the kinds of asset certificate.
type CertType uint8

const (
	CertNone CertType = iota
	CertIssue
	CertDomain
	CertNaming
)

// Attachment is the tagged variant an output carries. FromDID and
// ToDID are optional accompanying DID references; Version selects the
// payload revision for asset-issue/secondary-issue/cert payloads.
type Attachment struct {
	Kind    AttachmentKind
	FromDID string
	ToDID   string
	Version AttachmentVersion

	etp             *ETPPayload
	message         *MessagePayload
	assetIssue      *AssetIssuePayload
	assetSecondary  *AssetSecondaryIssuePayload
	assetTransfer   *AssetTransferPayload
	assetCert       *AssetCertPayload
	assetCertIssue  *AssetCertIssuePayload
	mitRegister     *MITRegisterPayload
	mitTransfer     *MITTransferPayload
	didRegister     *DIDRegisterPayload
	didTransfer     *DIDTransferPayload
}

// ETPPayload carries no extra fields: a plain-etp output's only economic
// content is TxOutput.Value.
type ETPPayload struct{}

// MessagePayload carries an arbitrary opaque message.
type MessagePayload struct {
	Message []byte
}

// AssetIssuePayload describes the first issuance of an asset symbol.
type AssetIssuePayload struct {
	Symbol                  string
	Address                 string
	MaxSupply               uint64
	IssuerDID               string
	SecondaryIssueThreshold SecondaryIssueThreshold
	CertMask                CertMask
}

// AssetSecondaryIssuePayload describes a secondary (follow-on) issuance.
type AssetSecondaryIssuePayload struct {
	Symbol  string
	Address string
	Amount  uint64
}

// AssetTransferPayload describes a transfer of already-issued asset units.
type AssetTransferPayload struct {
	Symbol  string
	Amount  uint64
	Address string
}

// AssetCertPayload describes a cert being moved/spent without reissuing it.
type AssetCertPayload struct {
	Symbol   string
	CertType CertType
	OwnerDID string
	Address  string
}

// AssetCertIssuePayload describes the first issuance of a (symbol, cert
// type) certificate.
type AssetCertIssuePayload struct {
	Symbol   string
	CertType CertType
	OwnerDID string
	Address  string
}

// MITRegisterPayload describes the registration of a new MIT symbol.
type MITRegisterPayload struct {
	Symbol  string
	Address string
}

// MITTransferPayload describes the transfer of an existing MIT token.
type MITTransferPayload struct {
	Symbol  string
	Address string
}

// DIDRegisterPayload describes the registration of a new DID symbol.
type DIDRegisterPayload struct {
	Symbol  string
	Address string
}

// DIDTransferPayload describes rebinding an existing DID symbol to a new
// address.
type DIDTransferPayload struct {
	Symbol     string
	NewAddress string
}

func newAttachment(kind AttachmentKind) Attachment {
	return Attachment{Kind: kind}
}

// NewETPAttachment builds a plain-etp attachment.
func NewETPAttachment() Attachment {
	a := newAttachment(AttachmentETP)
	a.etp = &ETPPayload{}
	return a
}

// NewMessageAttachment builds a message attachment.
func NewMessageAttachment(msg []byte) Attachment {
	a := newAttachment(AttachmentMessage)
	a.message = &MessagePayload{Message: msg}
	return a
}

// NewAssetIssueAttachment builds an asset-issue attachment.
func NewAssetIssueAttachment(p AssetIssuePayload) Attachment {
	a := newAttachment(AttachmentAssetIssue)
	a.assetIssue = &p
	return a
}

// NewAssetSecondaryIssueAttachment builds an asset-secondary-issue attachment.
func NewAssetSecondaryIssueAttachment(p AssetSecondaryIssuePayload) Attachment {
	a := newAttachment(AttachmentAssetSecondaryIssue)
	a.assetSecondary = &p
	return a
}

// NewAssetTransferAttachment builds an asset-transfer attachment.
func NewAssetTransferAttachment(p AssetTransferPayload) Attachment {
	a := newAttachment(AttachmentAssetTransfer)
	a.assetTransfer = &p
	return a
}

// NewAssetCertAttachment builds an asset-cert attachment.
func NewAssetCertAttachment(p AssetCertPayload) Attachment {
	a := newAttachment(AttachmentAssetCert)
	a.assetCert = &p
	return a
}

// NewAssetCertIssueAttachment builds an asset-cert-issue attachment.
func NewAssetCertIssueAttachment(p AssetCertIssuePayload) Attachment {
	a := newAttachment(AttachmentAssetCertIssue)
	a.assetCertIssue = &p
	return a
}

// NewMITRegisterAttachment builds an asset-mit-register attachment.
func NewMITRegisterAttachment(p MITRegisterPayload) Attachment {
	a := newAttachment(AttachmentAssetMITRegister)
	a.mitRegister = &p
	return a
}

// NewMITTransferAttachment builds an asset-mit-transfer attachment.
func NewMITTransferAttachment(p MITTransferPayload) Attachment {
	a := newAttachment(AttachmentAssetMITTransfer)
	a.mitTransfer = &p
	return a
}

// NewDIDRegisterAttachment builds a did-register attachment.
func NewDIDRegisterAttachment(p DIDRegisterPayload) Attachment {
	a := newAttachment(AttachmentDIDRegister)
	a.didRegister = &p
	return a
}

// NewDIDTransferAttachment builds a did-transfer attachment.
func NewDIDTransferAttachment(p DIDTransferPayload) Attachment {
	a := newAttachment(AttachmentDIDTransfer)
	a.didTransfer = &p
	return a
}

// The IsX predicates below partition outputs by kind.
func (a Attachment) IsETP() bool                     { return a.Kind == AttachmentETP }
func (a Attachment) IsMessage() bool                 { return a.Kind == AttachmentMessage }
func (a Attachment) IsAsset() bool {
	switch a.Kind {
	case AttachmentAssetIssue, AttachmentAssetSecondaryIssue, AttachmentAssetTransfer:
		return true
	default:
		return false
	}
}
func (a Attachment) IsAssetIssue() bool              { return a.Kind == AttachmentAssetIssue }
func (a Attachment) IsAssetSecondaryIssue() bool     { return a.Kind == AttachmentAssetSecondaryIssue }
func (a Attachment) IsAssetTransfer() bool           { return a.Kind == AttachmentAssetTransfer }
func (a Attachment) IsAssetCert() bool               { return a.Kind == AttachmentAssetCert }
func (a Attachment) IsAssetCertIssue() bool          { return a.Kind == AttachmentAssetCertIssue }
func (a Attachment) IsAssetMITRegister() bool        { return a.Kind == AttachmentAssetMITRegister }
func (a Attachment) IsAssetMITTransfer() bool        { return a.Kind == AttachmentAssetMITTransfer }
func (a Attachment) IsDIDRegister() bool             { return a.Kind == AttachmentDIDRegister }
func (a Attachment) IsDIDTransfer() bool             { return a.Kind == AttachmentDIDTransfer }
func (a Attachment) IsDID() bool                     { return a.Kind == AttachmentDIDRegister || a.Kind == AttachmentDIDTransfer }
func (a Attachment) IsAssetMIT() bool {
	return a.Kind == AttachmentAssetMITRegister || a.Kind == AttachmentAssetMITTransfer
}

// AsMessage and the other AsX accessors below return the payload of their
// kind. Each panics if a is not of that kind: accessors are only valid for their matching kind,
// and a mismatched call is a programmer error in validator code, never
// something driven by untrusted input (every call site first checks the
// matching IsX predicate).
func (a Attachment) AsMessage() MessagePayload {
	if a.message == nil {
		panic(fmt.Sprintf("consensus: AsMessage called on kind %d", a.Kind))
	}
	return *a.message
}

func (a Attachment) AsAssetIssue() AssetIssuePayload {
	if a.assetIssue == nil {
		panic(fmt.Sprintf("consensus: AsAssetIssue called on kind %d", a.Kind))
	}
	return *a.assetIssue
}

func (a Attachment) AsAssetSecondaryIssue() AssetSecondaryIssuePayload {
	if a.assetSecondary == nil {
		panic(fmt.Sprintf("consensus: AsAssetSecondaryIssue called on kind %d", a.Kind))
	}
	return *a.assetSecondary
}

func (a Attachment) AsAssetTransfer() AssetTransferPayload {
	if a.assetTransfer == nil {
		panic(fmt.Sprintf("consensus: AsAssetTransfer called on kind %d", a.Kind))
	}
	return *a.assetTransfer
}

func (a Attachment) AsAssetCert() AssetCertPayload {
	if a.assetCert == nil {
		panic(fmt.Sprintf("consensus: AsAssetCert called on kind %d", a.Kind))
	}
	return *a.assetCert
}

func (a Attachment) AsAssetCertIssue() AssetCertIssuePayload {
	if a.assetCertIssue == nil {
		panic(fmt.Sprintf("consensus: AsAssetCertIssue called on kind %d", a.Kind))
	}
	return *a.assetCertIssue
}

func (a Attachment) AsMITRegister() MITRegisterPayload {
	if a.mitRegister == nil {
		panic(fmt.Sprintf("consensus: AsMITRegister called on kind %d", a.Kind))
	}
	return *a.mitRegister
}

func (a Attachment) AsMITTransfer() MITTransferPayload {
	if a.mitTransfer == nil {
		panic(fmt.Sprintf("consensus: AsMITTransfer called on kind %d", a.Kind))
	}
	return *a.mitTransfer
}

func (a Attachment) AsDIDRegister() DIDRegisterPayload {
	if a.didRegister == nil {
		panic(fmt.Sprintf("consensus: AsDIDRegister called on kind %d", a.Kind))
	}
	return *a.didRegister
}

func (a Attachment) AsDIDTransfer() DIDTransferPayload {
	if a.didTransfer == nil {
		panic(fmt.Sprintf("consensus: AsDIDTransfer called on kind %d", a.Kind))
	}
	return *a.didTransfer
}

// AssetSymbol returns the symbol carried by any asset/cert/mit/did
// attachment, and ok=false for etp/message outputs. Used by the orchestrator
// to latch old_symbol_in.
func (a Attachment) AssetSymbol() (symbol string, ok bool) {
	switch a.Kind {
	case AttachmentAssetIssue:
		return a.assetIssue.Symbol, true
	case AttachmentAssetSecondaryIssue:
		return a.assetSecondary.Symbol, true
	case AttachmentAssetTransfer:
		return a.assetTransfer.Symbol, true
	case AttachmentAssetCert:
		return a.assetCert.Symbol, true
	case AttachmentAssetCertIssue:
		return a.assetCertIssue.Symbol, true
	case AttachmentAssetMITRegister:
		return a.mitRegister.Symbol, true
	case AttachmentAssetMITTransfer:
		return a.mitTransfer.Symbol, true
	case AttachmentDIDRegister:
		return a.didRegister.Symbol, true
	case AttachmentDIDTransfer:
		return a.didTransfer.Symbol, true
	default:
		return "", false
	}
}
