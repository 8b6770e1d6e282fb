/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent       = "sec-chessbreak-board/0.3.0 (+https://github.com/Al-Wasmo/sec-chessbreak-board)"
	PollingBaseURL  = "https://sec-chessbreak-board-backend.onrender.com"
	WebCacheBucket  = "sec-chessbreak-board-prod-webcache"
	DefaultListen   = ":8080"
	ViewerCookie    = "board_viewer"
	DiscordPrefsNS  = "discord"
	DefaultPrefsDir = "sec-chessbreak-board"
)
