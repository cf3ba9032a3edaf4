package tables

import (
	"danstore_server/structs"
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	tableName struct{}  `bun:"table:categories,alias:c"`
	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Slug      string    `bun:"slug,unique,notnull" json:"slug"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"-"`
}

type Product struct {
	tableName     struct{}            `bun:"table:products,alias:p"`
	ID            int64               `bun:"id,pk,autoincrement" json:"id"`
	Name          string              `bun:"name,notnull" json:"name"`
	Description   string              `bun:"description" json:"description"`
	Brand         string              `bun:"brand,notnull,default:'Generic'" json:"brand"`
	CategoryID    int64               `bun:"category_id,notnull" json:"category"`
	Price         decimal.Decimal     `bun:"price,notnull,type:numeric(10,2)" json:"price"`
	OriginalPrice decimal.NullDecimal `bun:"original_price,type:numeric(10,2)" json:"original_price"`
	Image         string              `bun:"image" json:"image"`
	Label         structs.Label       `bun:"label,notnull,default:'NONE'" json:"label"`
	LabelDisplay  string              `bun:"-" json:"label_display"`
	// Deprecated: predates the label column. Kept as its own flag for older
	// storefront builds, never derived from Label.
	IsBlackFriday bool           `bun:"is_black_friday,notnull,default:false" json:"is_black_friday"`
	IsActive      bool           `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt     time.Time      `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt     time.Time      `bun:"updated_at,notnull,default:now()" json:"-"`
	Images        []ProductImage `bun:"rel:has-many,join:id=product_id" json:"images"`
	Category      *Category      `bun:"rel:belongs-to,join:category_id=id" json:"-"`
}

type ProductImage struct {
	tableName struct{} `bun:"table:product_images,alias:pi"`
	ID        int64    `bun:"id,pk,autoincrement" json:"id"`
	ProductID int64    `bun:"product_id,notnull" json:"product_id"`
	URL       string   `bun:"url,notnull" json:"url"`
	SortOrder int      `bun:"sort_order,notnull,default:0" json:"sort_order"`
	IsSwatch  bool     `bun:"is_swatch,notnull,default:false" json:"is_swatch"`
}
