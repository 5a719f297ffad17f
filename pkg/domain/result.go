package domain

import "image"

// Result は 1 回の反射処理の成果物です。
type Result struct {
	Element *Element     // 処理後の要素（置き換えた場合は新しい要素）
	Surface *image.NRGBA // 合成結果。レガシー経路では nil
	Layout  *Layout      // レガシー経路のレイアウト指示。合成経路では nil
	Skipped bool         // マーカークラスにより処理をスキップした
}

// Box はコンテナ要素のスタイルです。
type Box struct {
	Classes  []string `json:"classes"`
	Position string   `json:"position"`
	Overflow string   `json:"overflow"`
	Height   float64  `json:"height"`
}

// AlphaRamp は上端から下端へ線形に変化する不透明度の指定です。
// FinishY はレイヤーの高さに対する終点の割合です。
type AlphaRamp struct {
	StartOpacity  float64 `json:"start_opacity"`
	FinishOpacity float64 `json:"finish_opacity"`
	FinishY       float64 `json:"finish_y"`
}

// Layer は絶対配置される子要素の描画指示です。
type Layer struct {
	Src            string     `json:"src"`
	Top            float64    `json:"top"`
	Left           float64    `json:"left"`
	Scale          float64    `json:"scale"`
	Width          float64    `json:"width"`
	Height         float64    `json:"height"`
	MirrorVertical bool       `json:"mirror_vertical"`
	Alpha          *AlphaRamp `json:"alpha,omitempty"`
}

// Layout はピクセル合成できないホスト向けの配置計画です。
type Layout struct {
	Container  Box   `json:"container"`
	Image      Layer `json:"image"`
	Reflection Layer `json:"reflection"`
}
