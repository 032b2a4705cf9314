package utils

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken means the table token could not be decoded or carries no
// table identity. Not recoverable without re-scanning the QR code.
var ErrMalformedToken = errors.New("malformed table token")

// ExtractTableID decodes the table identity embedded in the scanned table
// token. Only the payload segment is decoded; the signature is NOT verified
// here — the server verifies it when the token is submitted for validation,
// so the returned id is provisional until then.
func ExtractTableID(tableToken string) (string, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tableToken, claims); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	tableID, ok := claims["table_uuid"].(string)
	if !ok || tableID == "" {
		return "", fmt.Errorf("%w: missing table_uuid claim", ErrMalformedToken)
	}

	return tableID, nil
}
