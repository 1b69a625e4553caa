package security

import (
	"crypto/rand"
	"log"
	"math/big"
	"os"
)

var charset = "qwertyuiopasdfghjklzxcvbnmQWERTYUIOPASDFGHJKLZXCVBNM1234567890-_|!/"

func stringWithCharset(length int64, charset string) string {
	b := make([]byte, length)
	limit := big.NewInt(int64(len(charset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			log.Fatal(err)
		}
		b[i] = charset[n.Int64()]
	}
	return string(b)
}

// NewKeys returns the securecookie hash and block keys. Keys missing from the
// environment are generated and appended to .env so sessions survive restarts.
func NewKeys() ([]byte, []byte) {
	return newKeys(".env")
}

func newKeys(dotenvPath string) ([]byte, []byte) {
	var hashKey []byte
	var blockKey []byte

	hk, hkOk := os.LookupEnv("SIMPLESHOP_HASH_KEY")
	bk, bkOk := os.LookupEnv("SIMPLESHOP_BLOCK_KEY")

	if hkOk {
		hashKey = []byte(hk)
	} else {
		hashKey = []byte(GenerateRandomKey(32))
		writeToDotenv(dotenvPath, "SIMPLESHOP_HASH_KEY", string(hashKey))
	}
	if bkOk {
		blockKey = []byte(bk)
	} else {
		blockKey = []byte(GenerateRandomKey(24))
		writeToDotenv(dotenvPath, "SIMPLESHOP_BLOCK_KEY", string(blockKey))
	}
	return hashKey, blockKey
}

func writeToDotenv(path, name, value string) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if _, err := f.Write([]byte(name + "=" + value + "\n")); err != nil {
		log.Fatal(err)
	}
}

func GenerateRandomKey(length int64) string {
	return stringWithCharset(length, charset)
}
