// 명령줄 진입점: 네이버 블로그 최근 글의 검색 색인 여부를 점검한다.
// 하위 명령과 플래그는 internal/cli 참고.
package main

import "naver-index-check/internal/cli"

func main() {
	cli.Execute()
}
