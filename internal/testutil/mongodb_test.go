//go:build integration

package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeDBName(t *testing.T) {
	tests := []struct {
		name     string
		testName string
		seq      int64
		prefix   string
	}{
		{name: "subtest separators", testName: "TestConfirmations/round trip", seq: 1, prefix: "fc_testconfirmations_round_trip_"},
		{name: "forbidden characters", testName: `Test$Logs."x"`, seq: 2, prefix: "fc_test_logs___x__"},
		{name: "long name", testName: strings.Repeat("TestShippingSession", 10), seq: 3, prefix: "fc_testshippingsession"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeDBName(tt.testName, tt.seq)

			assert.True(t, strings.HasPrefix(got, tt.prefix), got)
			assert.LessOrEqual(t, len(got), maxDBName)
			assert.False(t, strings.ContainsAny(got, `/\. "$`), got)
		})
	}
}

func TestDBName_Unique(t *testing.T) {
	assert.NotEqual(t, DBName(t), DBName(t))
}

func TestMongoImage(t *testing.T) {
	t.Setenv(MongoImageEnv, "")
	assert.Equal(t, DefaultMongoImage, MongoImage())

	t.Setenv(MongoImageEnv, "mongo:6.0")
	assert.Equal(t, "mongo:6.0", MongoImage())
}
