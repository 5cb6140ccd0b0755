package chainstore

import (
	"encoding/json"
	"fmt"

	"github.com/novaguard/novachain/consensus"
)

// txDTO is the on-disk shape of a confirmed transaction. consensus.Tx and
// consensus.Attachment keep their payload fields private behind accessors
// (a tagged-union shape), so persistence goes through this plain,
// JSON-friendly mirror instead of encoding the domain types directly.
type txDTO struct {
	Version  uint32       `json:"version"`
	Inputs   []inputDTO   `json:"inputs"`
	Outputs  []outputDTO  `json:"outputs"`
	Locktime uint32       `json:"locktime"`
}

type inputDTO struct {
	PrevTxHash string `json:"prev_tx_hash"`
	PrevIndex  uint32 `json:"prev_index"`
	Script     []byte `json:"script"`
	Sequence   uint32 `json:"sequence"`
}

type outputDTO struct {
	Value      uint64         `json:"value"`
	Script     []byte         `json:"script"`
	Attachment attachmentDTO  `json:"attachment"`
}

type attachmentDTO struct {
	Kind    uint8  `json:"kind"`
	FromDID string `json:"from_did,omitempty"`
	ToDID   string `json:"to_did,omitempty"`
	Version uint8  `json:"version"`

	Symbol     string `json:"symbol,omitempty"`
	Address    string `json:"address,omitempty"`
	NewAddress string `json:"new_address,omitempty"`
	Amount     uint64 `json:"amount,omitempty"`
	MaxSupply  uint64 `json:"max_supply,omitempty"`
	IssuerDID  string `json:"issuer_did,omitempty"`
	OwnerDID   string `json:"owner_did,omitempty"`
	CertType   uint8  `json:"cert_type,omitempty"`
	Threshold  uint8  `json:"threshold,omitempty"`
	CertMask   uint8  `json:"cert_mask,omitempty"`
	Message    []byte `json:"message,omitempty"`
}

func EncodeTx(tx *consensus.Tx) ([]byte, error) {
	dto := txDTO{Version: tx.Version, Locktime: tx.Locktime}
	for _, in := range tx.Inputs {
		dto.Inputs = append(dto.Inputs, inputDTO{
			PrevTxHash: hashHex(in.PreviousOutput.TxHash),
			PrevIndex:  in.PreviousOutput.Index,
			Script:     []byte(in.Script),
			Sequence:   in.Sequence,
		})
	}
	for _, out := range tx.Outputs {
		a, err := encodeAttachment(out.Attachment)
		if err != nil {
			return nil, err
		}
		dto.Outputs = append(dto.Outputs, outputDTO{
			Value:      out.Value,
			Script:     []byte(out.Script),
			Attachment: a,
		})
	}
	return json.Marshal(dto)
}

func DecodeTx(b []byte) (*consensus.Tx, error) {
	var dto txDTO
	if err := json.Unmarshal(b, &dto); err != nil {
		return nil, fmt.Errorf("chainstore: decode tx: %w", err)
	}
	tx := &consensus.Tx{Version: dto.Version, Locktime: dto.Locktime}
	for _, in := range dto.Inputs {
		hash, err := hashFromHex(in.PrevTxHash)
		if err != nil {
			return nil, err
		}
		tx.Inputs = append(tx.Inputs, consensus.TxInput{
			PreviousOutput: consensus.OutPoint{TxHash: hash, Index: in.PrevIndex},
			Script:         consensus.Script(in.Script),
			Sequence:       in.Sequence,
		})
	}
	for _, out := range dto.Outputs {
		a, err := decodeAttachment(out.Attachment)
		if err != nil {
			return nil, err
		}
		tx.Outputs = append(tx.Outputs, consensus.TxOutput{
			Value:      out.Value,
			Script:     consensus.Script(out.Script),
			Attachment: a,
		})
	}
	return tx, nil
}

func encodeAttachment(a consensus.Attachment) (attachmentDTO, error) {
	dto := attachmentDTO{Kind: uint8(a.Kind), FromDID: a.FromDID, ToDID: a.ToDID, Version: uint8(a.Version)}
	switch {
	case a.IsETP():
	case a.IsMessage():
		dto.Message = a.AsMessage().Message
	case a.IsAssetIssue():
		p := a.AsAssetIssue()
		dto.Symbol, dto.Address, dto.MaxSupply, dto.IssuerDID = p.Symbol, p.Address, p.MaxSupply, p.IssuerDID
		dto.Threshold = uint8(p.SecondaryIssueThreshold)
		dto.CertMask = uint8(p.CertMask)
	case a.IsAssetSecondaryIssue():
		p := a.AsAssetSecondaryIssue()
		dto.Symbol, dto.Address, dto.Amount = p.Symbol, p.Address, p.Amount
	case a.IsAssetTransfer():
		p := a.AsAssetTransfer()
		dto.Symbol, dto.Amount, dto.Address = p.Symbol, p.Amount, p.Address
	case a.IsAssetCert():
		p := a.AsAssetCert()
		dto.Symbol, dto.CertType, dto.OwnerDID, dto.Address = p.Symbol, uint8(p.CertType), p.OwnerDID, p.Address
	case a.IsAssetCertIssue():
		p := a.AsAssetCertIssue()
		dto.Symbol, dto.CertType, dto.OwnerDID, dto.Address = p.Symbol, uint8(p.CertType), p.OwnerDID, p.Address
	case a.IsAssetMITRegister():
		p := a.AsMITRegister()
		dto.Symbol, dto.Address = p.Symbol, p.Address
	case a.IsAssetMITTransfer():
		p := a.AsMITTransfer()
		dto.Symbol, dto.Address = p.Symbol, p.Address
	case a.IsDIDRegister():
		p := a.AsDIDRegister()
		dto.Symbol, dto.Address = p.Symbol, p.Address
	case a.IsDIDTransfer():
		p := a.AsDIDTransfer()
		dto.Symbol, dto.NewAddress = p.Symbol, p.NewAddress
	default:
		return dto, fmt.Errorf("chainstore: unknown attachment kind %d", a.Kind)
	}
	return dto, nil
}

func decodeAttachment(dto attachmentDTO) (consensus.Attachment, error) {
	kind := consensus.AttachmentKind(dto.Kind)
	var a consensus.Attachment
	switch kind {
	case consensus.AttachmentETP:
		a = consensus.NewETPAttachment()
	case consensus.AttachmentMessage:
		a = consensus.NewMessageAttachment(dto.Message)
	case consensus.AttachmentAssetIssue:
		a = consensus.NewAssetIssueAttachment(consensus.AssetIssuePayload{
			Symbol: dto.Symbol, Address: dto.Address, MaxSupply: dto.MaxSupply,
			IssuerDID:               dto.IssuerDID,
			SecondaryIssueThreshold: consensus.SecondaryIssueThreshold(dto.Threshold),
			CertMask:                consensus.CertMask(dto.CertMask),
		})
	case consensus.AttachmentAssetSecondaryIssue:
		a = consensus.NewAssetSecondaryIssueAttachment(consensus.AssetSecondaryIssuePayload{
			Symbol: dto.Symbol, Address: dto.Address, Amount: dto.Amount,
		})
	case consensus.AttachmentAssetTransfer:
		a = consensus.NewAssetTransferAttachment(consensus.AssetTransferPayload{
			Symbol: dto.Symbol, Amount: dto.Amount, Address: dto.Address,
		})
	case consensus.AttachmentAssetCert:
		a = consensus.NewAssetCertAttachment(consensus.AssetCertPayload{
			Symbol: dto.Symbol, CertType: consensus.CertType(dto.CertType), OwnerDID: dto.OwnerDID, Address: dto.Address,
		})
	case consensus.AttachmentAssetCertIssue:
		a = consensus.NewAssetCertIssueAttachment(consensus.AssetCertIssuePayload{
			Symbol: dto.Symbol, CertType: consensus.CertType(dto.CertType), OwnerDID: dto.OwnerDID, Address: dto.Address,
		})
	case consensus.AttachmentAssetMITRegister:
		a = consensus.NewMITRegisterAttachment(consensus.MITRegisterPayload{Symbol: dto.Symbol, Address: dto.Address})
	case consensus.AttachmentAssetMITTransfer:
		a = consensus.NewMITTransferAttachment(consensus.MITTransferPayload{Symbol: dto.Symbol, Address: dto.Address})
	case consensus.AttachmentDIDRegister:
		a = consensus.NewDIDRegisterAttachment(consensus.DIDRegisterPayload{Symbol: dto.Symbol, Address: dto.Address})
	case consensus.AttachmentDIDTransfer:
		a = consensus.NewDIDTransferAttachment(consensus.DIDTransferPayload{Symbol: dto.Symbol, NewAddress: dto.NewAddress})
	default:
		return a, fmt.Errorf("chainstore: unknown attachment kind %d", dto.Kind)
	}
	a.FromDID, a.ToDID, a.Version = dto.FromDID, dto.ToDID, consensus.AttachmentVersion(dto.Version)
	return a, nil
}
