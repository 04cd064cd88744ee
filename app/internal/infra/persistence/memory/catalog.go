package memory

import (
	"embed"
	"encoding/json"
	"fmt"

	dombranch "example.com/branch-cart/app/internal/domain/branch"
	domproduct "example.com/branch-cart/app/internal/domain/product"
)

//go:embed data/*.json
var bundled embed.FS

type productRecord struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

type branchRecord struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
}

// BundledProducts decodes the catalog shipped with the binary.
func BundledProducts() ([]domproduct.Product, error) {
	var records []productRecord
	if err := decodeBundled("data/products.json", &records); err != nil {
		return nil, err
	}
	products := make([]domproduct.Product, 0, len(records))
	for _, r := range records {
		products = append(products, domproduct.Product{ID: r.ID, Name: r.Name, Price: r.Price, Image: r.Image})
	}
	return products, nil
}

// BundledBranches decodes the branch directory shipped with the binary.
func BundledBranches() ([]dombranch.Branch, error) {
	var records []branchRecord
	if err := decodeBundled("data/branches.json", &records); err != nil {
		return nil, err
	}
	branches := make([]dombranch.Branch, 0, len(records))
	for _, r := range records {
		branches = append(branches, dombranch.Branch{ID: r.ID, Name: r.Name, Number: r.Number})
	}
	return branches, nil
}

func decodeBundled(name string, dst any) error {
	raw, err := bundled.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
