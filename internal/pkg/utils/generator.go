package utils

import (
	"consulat-service/internal/pkg/constvars"
	"crypto/rand"
	"fmt"
	"math/big"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReference builds a human readable reference such as TCK-LZ3K9Q1A-7F2C.
func GenerateReference(prefix string, now time.Time) string {
	timestamp := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return fmt.Sprintf("%s-%s-%s", prefix, timestamp, randomString(4))
}

func GenerateObjectName(prefix, ownerID, fileName string) string {
	timestamp := time.Now().Format("20060102_150405.000000000")
	return fmt.Sprintf("%s/%s/%s%s", prefix, ownerID, timestamp, strings.ToLower(filepath.Ext(fileName)))
}

func randomString(length int) string {
	max := big.NewInt(int64(len(referenceAlphabet)))
	result := make([]byte, length)
	for i := range result {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			result[i] = referenceAlphabet[i%len(referenceAlphabet)]
			continue
		}
		result[i] = referenceAlphabet[num.Int64()]
	}
	return string(result)
}

// GenerateRequestID returns a prefixed identifier used to correlate the logs of one request.
func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}
