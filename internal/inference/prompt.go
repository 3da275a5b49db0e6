package inference

import (
	"fmt"
	"time"
)

const systemPrompt = `あなたは学校のプリントから日程情報を抽出するAIアシスタントです。` +
	`OCRで読み取られたテキストを解析し、カレンダーに登録すべきイベントをJSONで出力します。` +
	`説明や前置きは一切出力せず、JSONデータのみを返してください。`

// buildPrompt renders the extraction instructions for one notice. Relative
// date expressions are resolved against referenceDate, not the wall clock.
func buildPrompt(text string, referenceDate time.Time) string {
	return fmt.Sprintf(`以下のOCRで読み取られたテキストから、カレンダーに登録すべきイベント・予定を全て特定してください。

# 抽出ルール：
- 日付、イベント名、時間（ある場合）、場所（ある場合）を抽出
- 日本の日付表記（2025年3月21日、3/21など）を解析
- 「明日」「来週木曜日」などの相対的な日付表現は、基準日（%s）から計算
- 時間があれば開始・終了時間を特定（13:00～15:00、午後1時から3時まで、など）
- 時間がない場合は終日イベントと判断

# 出力形式：
- JSONフォーマットで出力
- 次のキーを持つオブジェクトの配列: title, description, start_date, start_time, end_date, end_time, all_day, location, confidence
- 日付は'YYYY-MM-DD'形式（例: 2025-03-21）
- 時間は'HH:MM'の24時間形式（例: 13:30）
- all_dayは時間指定がなければtrue、あればfalse
- confidence（確信度）は0.0～1.0の数値で、この情報がイベントとして正しい確率
- description（説明）はイベントの詳細情報
- 必須キー: title, start_date, all_day, confidence

# OCRテキスト:
%s

JSONデータのみを出力してください。説明や前置きは不要です。`,
		referenceDate.Format("2006年01月02日"), text)
}
