package tetris

// PieceType はテトリミノの種類を表します。
type PieceType int

const (
	TypeI PieceType = iota // 0: I-ミノ (シアン)
	TypeO                  // 1: O-ミノ (黄色)
	TypeT                  // 2: T-ミノ (紫)
	TypeS                  // 3: S-ミノ (緑)
	TypeZ                  // 4: Z-ミノ (赤)
	TypeJ                  // 5: J-ミノ (青)
	TypeL                  // 6: L-ミノ (オレンジ)
)

// PieceTypeCount はテトリミノの種類数です。
const PieceTypeCount = 7

// AllPieceTypes は宣言順にすべてのPieceTypeを返します。
func AllPieceTypes() []PieceType {
	return []PieceType{TypeI, TypeO, TypeT, TypeS, TypeZ, TypeJ, TypeL}
}

var pieceTypeNames = [PieceTypeCount]string{"I", "O", "T", "S", "Z", "J", "L"}

// Valid はtが7種類のいずれかであればtrueを返します。
func (t PieceType) Valid() bool {
	return t >= TypeI && t <= TypeL
}

func (t PieceType) String() string {
	if !t.Valid() {
		return "?"
	}
	return pieceTypeNames[t]
}

// Color はセルやピースの色をRGBで表します。
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var (
	ColorCyan   = Color{0, 255, 255}
	ColorYellow = Color{255, 255, 0}
	ColorPurple = Color{128, 0, 128}
	ColorGreen  = Color{0, 255, 0}
	ColorRed    = Color{255, 0, 0}
	ColorBlue   = Color{0, 0, 255}
	ColorOrange = Color{255, 165, 0}
	ColorWhite  = Color{255, 255, 255}
)

var pieceColors = map[PieceType]Color{
	TypeI: ColorCyan,
	TypeO: ColorYellow,
	TypeT: ColorPurple,
	TypeS: ColorGreen,
	TypeZ: ColorRed,
	TypeJ: ColorBlue,
	TypeL: ColorOrange,
}

// Color はテトリミノの種類ごとに固定された色を返します。
func (t PieceType) Color() Color {
	if c, ok := pieceColors[t]; ok {
		return c
	}
	return ColorWhite
}

// Shape は1つの回転状態の形状です。列優先で格納されます:
// 外側のインデックスが列 (x方向のオフセット)、内側のインデックスが行 (y方向のオフセット) です。
type Shape [][]bool

// pieceShapes は各PieceTypeの回転状態を定義します。
// [PieceType][RotationIndex][Column][Row]
// このテーブルはプロセス全体で共有され、変更されることはありません。
var pieceShapes = map[PieceType][]Shape{
	TypeI: {
		{{true}, {true}, {true}, {true}}, // 横
		{{true, true, true, true}},       // 縦
	},
	TypeO: {
		{{true, true}, {true, true}},
	},
	TypeT: {
		{{false, true}, {true, true}, {false, true}}, // 上
		{{true, true, true}, {false, true, false}},   // 右
		{{true, false}, {true, true}, {true, false}}, // 下
		{{false, true, false}, {true, true, true}},   // 左
	},
	TypeS: {
		{{true, false}, {true, true}, {false, true}},
		{{false, true, true}, {true, true, false}},
	},
	TypeZ: {
		{{false, true}, {true, true}, {true, false}},
		{{true, true, false}, {false, true, true}},
	},
	TypeJ: {
		{{false, false, true}, {true, true, true}},
		{{true, true}, {false, true}, {false, true}},
		{{true, true, true}, {true, false, false}},
		{{true, false}, {true, false}, {true, true}},
	},
	TypeL: {
		{{true, true, true}, {false, false, true}},
		{{true, true}, {true, false}, {true, false}},
		{{true, false, false}, {true, true, true}},
		{{false, true}, {false, true}, {true, true}},
	},
}

// Shapes はテトリミノの種類ごとのすべての回転状態を返します。
// 戻り値は共有テーブルなので呼び出し側で変更してはいけません。
func (t PieceType) Shapes() []Shape {
	return pieceShapes[t]
}

// Point はボード上の絶対座標です。yは下方向に増加します。
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Piece はテトリミノの現在の状態（種類、ボード上の基準点座標、回転状態）を表します。
// 基準点は形状行列の左上です。
type Piece struct {
	Type     PieceType `json:"type"`     // テトリミノの種類
	X        int       `json:"x"`        // ボード上のX座標
	Y        int       `json:"y"`        // ボード上のY座標
	Rotation int       `json:"rotation"` // 回転状態のインデックス (0 <= Rotation < len(Shapes))
}

// NewPiece は指定位置に回転0のテトリミノを生成します。
func NewPiece(t PieceType, x, y int) *Piece {
	return &Piece{Type: t, X: x, Y: y}
}

// Shapes はこのピースの種類の回転状態一覧を返します。
func (p *Piece) Shapes() []Shape {
	return p.Type.Shapes()
}

// Shape は現在の回転状態の形状を返します。
func (p *Piece) Shape() Shape {
	shapes := p.Shapes()
	if len(shapes) == 0 {
		return nil
	}
	return shapes[mod(p.Rotation, len(shapes))]
}

// Color はピースの色を返します。
func (p *Piece) Color() Color {
	return p.Type.Color()
}

// Cells は現在の回転状態で埋まっているセルのボード上の絶対座標を返します。
//
// Returns:
//
//	[]Point: (X + 列インデックス, Y + 行インデックス) の配列
func (p *Piece) Cells() []Point {
	return p.cellsAt(0, 0)
}

func (p *Piece) cellsAt(dx, dy int) []Point {
	shape := p.Shape()
	cells := make([]Point, 0, 4)
	for col, column := range shape {
		for row, filled := range column {
			if filled {
				cells = append(cells, Point{X: p.X + col + dx, Y: p.Y + row + dy})
			}
		}
	}
	return cells
}

// RotateClockwise はピースを時計回りに回転させます。衝突判定は呼び出し側で行ってください。
func (p *Piece) RotateClockwise() {
	p.Rotation = mod(p.Rotation+1, len(p.Shapes()))
}

// RotateCounterClockwise はピースを反時計回りに回転させます。
func (p *Piece) RotateCounterClockwise() {
	p.Rotation = mod(p.Rotation-1, len(p.Shapes()))
}

// Move はピースを(dx, dy)だけ無条件に移動させます。
func (p *Piece) Move(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// Clone は現在のPieceオブジェクトのコピーを返します。
// これにより、操作前のピースの状態を保持しつつ、操作後の状態を仮に試すことができます。
// 形状テーブルは不変なので共有されます。
func (p *Piece) Clone() *Piece {
	newP := *p
	return &newP
}

func mod(a, n int) int {
	if n <= 0 {
		return 0
	}
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
