package communication

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"reversi/game"
	"reversi/player"
)

var page = template.Must(template.New("page").Funcs(template.FuncMap{
	"iter": func(n int) []int {
		a := make([]int, n)
		for i := range a {
			a[i] = i
		}
		return a
	},
}).Parse(pageTemplate))

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Size    int
		Options []string
	}{Size: game.Size, Options: player.Options()}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		log.Error().Err(err).Msg("render page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

const pageTemplate = `<!doctype html>
<html><head><meta charset="utf-8"/><title>Reversi</title>
<style>
td{width:40px;height:40px;background:#2e7d32;text-align:center;border:1px solid #1b5e20;cursor:pointer}
td.candidate{background:#43a047}
.disc{width:32px;height:32px;border-radius:50%;margin:auto}
.black{background:#000}.white{background:#fff}
</style></head>
<body>
<div>
  <label>Black <select id="first">{{range .Options}}<option value="{{.}}">{{.}}</option>{{end}}</select></label>
  <label>White <select id="second">{{range .Options}}<option value="{{.}}">{{.}}</option>{{end}}</select></label>
  <button id="start">Start</button>
  <button id="end" disabled>End</button>
  <button id="undo" disabled>Undo</button>
</div>
<table id="board">
{{range $r := iter .Size}}<tr>{{range $c := iter $.Size}}<td data-row="{{$r}}" data-col="{{$c}}"></td>{{end}}</tr>
{{end}}</table>
<p id="message"></p>
<script>
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
const send = (cmd) => ws.send(JSON.stringify(cmd));
const $ = (id) => document.getElementById(id);
$("start").onclick = () => send({type: "start", first: $("first").value, second: $("second").value});
$("end").onclick = () => send({type: "end"});
$("undo").onclick = () => send({type: "undo"});
document.querySelectorAll("#board td").forEach((td) => {
  td.onclick = () => send({type: "select", row: +td.dataset.row, col: +td.dataset.col});
});
ws.onmessage = (ev) => {
  const f = JSON.parse(ev.data);
  switch (f.type) {
  case "state":
    document.querySelectorAll("#board td").forEach((td) => {
      const r = +td.dataset.row, c = +td.dataset.col;
      const v = f.state.board[r][c];
      td.className = f.state.legal[r][c] ? "candidate" : "";
      td.innerHTML = v === 0 ? "" : '<div class="disc ' + (v > 0 ? "black" : "white") + '"></div>';
    });
    break;
  case "notice":
    $("message").textContent = f.notice;
    break;
  case "result":
    $("message").textContent = f.message;
    break;
  case "controls":
    $("start").disabled = !f.controls.start;
    $("end").disabled = !f.controls.end;
    $("undo").disabled = !f.controls.undo;
    $("first").disabled = $("second").disabled = !f.controls.seats;
    if (f.controls.start) { $("message").textContent = ""; }
    break;
  }
};
</script>
</body></html>
`
