package tetris

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/progate-hackathon-strawberry-flavor/gitris-core/internal/models/tetris"
)

// PieceFactory はテトリミノを生成します。
// ランダム生成には7-bagシステムを使い、7個ごとに全種類が1回ずつ出現することを保証します。
type PieceFactory struct {
	spawnX int
	spawnY int
	bag    []tetris.PieceType // 現在のバッグの残り (重複なし、最大7個)
	rng    *rand.Rand
}

// NewPieceFactory はボード幅から出現位置を決めたファクトリを返します。
// rng が nil の場合は現在時刻をシードにします。
//
// Parameters:
//
//	boardWidth : ボードの幅 (出現列は幅/2を偶数丸めした値)
//	rng        : バッグのシャッフルに使う乱数ジェネレータ
func NewPieceFactory(boardWidth int, rng *rand.Rand) *PieceFactory {
	if rng == nil {
		rng = newRand(0)
	}
	return &PieceFactory{
		spawnX: int(math.RoundToEven(float64(boardWidth) / 2)),
		spawnY: 0,
		rng:    rng,
	}
}

// newRand はシードからPCGベースの乱数ジェネレータを作ります。seedが0なら時刻を使います。
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// SpawnPosition はピースの出現座標を返します。
func (f *PieceFactory) SpawnPosition() (x, y int) {
	return f.spawnX, f.spawnY
}

// CreatePiece は指定された種類のピースを出現位置に回転0で生成します。
func (f *PieceFactory) CreatePiece(t tetris.PieceType) *tetris.Piece {
	return tetris.NewPiece(t, f.spawnX, f.spawnY)
}

// CreateRandomPiece はバッグから次の種類を取り出してピースを生成します。
// バッグが空なら、取り出す前に7種類をシャッフルして補充します。
func (f *PieceFactory) CreateRandomPiece() *tetris.Piece {
	if len(f.bag) == 0 {
		f.refillBag()
	}
	t := f.bag[0]
	f.bag = f.bag[1:]
	return f.CreatePiece(t)
}

// CreateAllPieces は各種類のピースを宣言順に1つずつ生成します。デバッグやテスト用です。
func (f *PieceFactory) CreateAllPieces() []*tetris.Piece {
	types := tetris.AllPieceTypes()
	pieces := make([]*tetris.Piece, 0, len(types))
	for _, t := range types {
		pieces = append(pieces, f.CreatePiece(t))
	}
	return pieces
}

// Remaining は現在のバッグに残っている種類数を返します。
func (f *PieceFactory) Remaining() int {
	return len(f.bag)
}

func (f *PieceFactory) refillBag() {
	bag := tetris.AllPieceTypes()
	f.rng.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
	f.bag = bag
}
