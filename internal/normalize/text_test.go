package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldTurkishCasing(t *testing.T) {
	assert.Equal(t, "migros", Fold("MIGROS"))
	assert.Equal(t, "migros", Fold("MİGROS"))
	assert.Equal(t, "faturasi", Fold("FATURASI"))
	assert.Equal(t, "faturasi", Fold("faturası"))
	assert.Equal(t, "starbucks", Fold("STARBUCKS"))
}

// latin1Damage reproduces the defect the repair targets: UTF-8 bytes
// misread as Latin-1 code points.
func latin1Damage(s string) string {
	runes := make([]rune, 0, len(s))
	for _, b := range []byte(s) {
		runes = append(runes, rune(b))
	}
	return string(runes)
}

func TestRepairMojibake(t *testing.T) {
	for _, s := range []string{"ödeme", "işlem ücreti", "AĞUSTOS ÖDEMESİ"} {
		assert.Equal(t, s, RepairMojibake(latin1Damage(s)))
	}
}

func TestRepairMojibakeLeavesCleanTextAlone(t *testing.T) {
	for _, s := range []string{"STARBUCKS", "işlem ücreti", "ödeme", "café"} {
		assert.Equal(t, s, RepairMojibake(s))
	}
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "STARBUCKS ISTANBUL", CleanDescription("  STARBUCKS   ISTANBUL  "))
}
