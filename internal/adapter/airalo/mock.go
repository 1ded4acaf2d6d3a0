package airalo

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/encryptSIM/backend/internal/domain/model"
)

// MockClient fabricates sims locally instead of calling the vendor; used when
// MOCK_COMPLETE_ORDER_ENABLED is set, mainly for staging environments.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) PlaceOrder(_ context.Context, spec model.ProductSpec) (*model.SimArtifact, error) {
	sims := FakeSims([]model.ProductSpec{spec})
	return &sims[0], nil
}

func (m *MockClient) PlaceTopup(_ context.Context, spec model.ProductSpec) (*model.SimArtifact, error) {
	return &model.SimArtifact{
		ICCID:       spec.ICCID,
		PackageID:   spec.PackageID,
		CreatedAtMs: time.Now().UnixMilli(),
	}, nil
}

func (m *MockClient) PackagePlans(context.Context, string, string) (json.RawMessage, error) {
	return json.RawMessage(`[]`), nil
}

func (m *MockClient) SIMTopups(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`[]`), nil
}

func (m *MockClient) DataUsage(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

// FakeSims builds one plausible sim per requested unit across the specs.
func FakeSims(specs []model.ProductSpec) []model.SimArtifact {
	var sims []model.SimArtifact
	now := time.Now()
	for _, spec := range specs {
		quantity := spec.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		for i := 0; i < quantity; i++ {
			iccid := fakeICCID()
			code := fmt.Sprintf("LPA:1$mock.invalid$%s", iccid)
			sims = append(sims, model.SimArtifact{
				ICCID:       iccid,
				QRCode:      code,
				QRCodeURL:   "https://mock.invalid/qr/" + iccid,
				PackageID:   spec.PackageID,
				CreatedAtMs: now.UnixMilli(),
			})
		}
	}
	return sims
}

func fakeICCID() string {
	digits := make([]byte, 17)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}
	return "89" + string(digits)
}
