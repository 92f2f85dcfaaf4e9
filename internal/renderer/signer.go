package renderer

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	digitorus_pdf "github.com/digitorus/pdf"
	"github.com/digitorus/pdfsign/sign"
)

type SignerOptions struct {
	Enabled  bool
	CertPath string
	KeyPath  string
	Name     string
	Location string
}

// CertificateSigner applies a certification signature to rendered PDFs. A
// disabled signer passes documents through unchanged.
type CertificateSigner struct {
	certificate *x509.Certificate
	privateKey  *rsa.PrivateKey
	name        string
	location    string
	enabled     bool
}

func NewCertificateSigner(opts SignerOptions) (*CertificateSigner, error) {
	if !opts.Enabled {
		slog.Info("Signer PDF signing disabled in configuration")
		return &CertificateSigner{enabled: false}, nil
	}

	if opts.CertPath == "" || opts.KeyPath == "" {
		return nil, fmt.Errorf("signing enabled but certificate or key path not configured")
	}

	certPEM, err := os.ReadFile(opts.CertPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate file %s: %w", opts.CertPath, err)
	}
	certBlock, _ := pem.Decode(certPEM)
	if certBlock == nil {
		return nil, fmt.Errorf("failed to decode certificate PEM from %s", opts.CertPath)
	}
	certificate, err := x509.ParseCertificate(certBlock.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate: %w", err)
	}

	keyPEM, err := os.ReadFile(opts.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key file %s: %w", opts.KeyPath, err)
	}
	keyBlock, _ := pem.Decode(keyPEM)
	if keyBlock == nil {
		return nil, fmt.Errorf("failed to decode private key PEM from %s", opts.KeyPath)
	}
	privateKey, err := parseRSAKey(keyBlock.Bytes)
	if err != nil {
		return nil, err
	}

	name, location := opts.Name, opts.Location
	if name == "" {
		name = "Easy Cert System"
	}
	if location == "" {
		location = "Digital Certificate Platform"
	}

	slog.Info("Signer Initialized",
		"cert_subject", certificate.Subject.String(),
		"cert_expiry", certificate.NotAfter)

	return &CertificateSigner{
		certificate: certificate,
		privateKey:  privateKey,
		name:        name,
		location:    location,
		enabled:     true,
	}, nil
}

func parseRSAKey(der []byte) (*rsa.PrivateKey, error) {
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not RSA format")
	}
	return rsaKey, nil
}

func (s *CertificateSigner) IsEnabled() bool {
	return s != nil && s.enabled
}

// SignPDF returns the signed document. Signing problems are logged and the
// unsigned document is returned; only empty input is an error.
func (s *CertificateSigner) SignPDF(pdfBytes []byte, documentID string) ([]byte, error) {
	if len(pdfBytes) == 0 {
		return pdfBytes, fmt.Errorf("empty PDF bytes")
	}
	if !s.IsEnabled() || s.privateKey == nil || s.certificate == nil {
		return pdfBytes, nil
	}

	signData := sign.SignData{
		Signature: sign.SignDataSignature{
			Info: sign.SignDataSignatureInfo{
				Name:     s.name,
				Location: s.location,
				Reason:   fmt.Sprintf("Certificate document %s", documentID),
				Date:     time.Now(),
			},
			CertType:   sign.CertificationSignature,
			DocMDPPerm: sign.AllowFillingExistingFormFieldsAndSignaturesPerms,
		},
		Signer:      s.privateKey,
		Certificate: s.certificate,
	}

	inputReader := bytes.NewReader(pdfBytes)
	var outputBuffer bytes.Buffer

	var signingError error
	func() {
		defer func() {
			if r := recover(); r != nil {
				signingError = fmt.Errorf("panic during signing: %v", r)
			}
		}()

		pdfReader, err := digitorus_pdf.NewReader(inputReader, int64(len(pdfBytes)))
		if err != nil {
			signingError = err
			return
		}
		if _, err := inputReader.Seek(0, io.SeekStart); err != nil {
			signingError = err
			return
		}
		signingError = sign.Sign(inputReader, &outputBuffer, pdfReader, int64(len(pdfBytes)), signData)
	}()

	if signingError != nil || outputBuffer.Len() == 0 {
		slog.Warn("Signer Signing failed, returning unsigned PDF",
			"document_id", documentID,
			"error", signingError)
		return pdfBytes, nil
	}

	slog.Info("Signer PDF signed",
		"document_id", documentID,
		"original_size", len(pdfBytes),
		"signed_size", outputBuffer.Len())
	return outputBuffer.Bytes(), nil
}
