package spec

// GID 遊戲 ID；在同一個 Catalog 內唯一，用於路由與查表。
type GID uint

// TileID 盤面上的 tile 類型識別值。
//
// 約定：
//   - 0 保留為「空格」，設定檔中的 tile 目錄不允許使用 0。
//   - 只有相等性語意，沒有大小順序語意；目錄順序（catalog order）另由
//     TileSetting.Tiles 的排列決定，用於生成時的平衡決勝。
type TileID = int16
