package vizserver

const homePage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>markerfield</title>
<style>
body { background: #111; color: #ccc; font-family: monospace; }
canvas { background: #000; image-rendering: pixelated; }
button { margin-right: 4px; }
</style>
</head>
<body>
<div id="bar"></div>
<div id="status"></div>
<canvas id="field" width="600" height="600"></canvas>
<script>
const cell = 6;
const canvas = document.getElementById("field");
const ctx = canvas.getContext("2d");
const status = document.getElementById("status");
const bar = document.getElementById("bar");

function post(path) { fetch(path, {method: "POST"}); }

function draw(f) {
	canvas.width = f.width * cell;
	canvas.height = f.height * cell;
	ctx.clearRect(0, 0, canvas.width, canvas.height);
	if (f.debug) {
		for (const m of f.markers) {
			ctx.fillStyle = m.color;
			ctx.fillRect(m.x * cell + 2, m.y * cell + 2, 2, 2);
		}
	}
	for (const a of f.agents) {
		ctx.fillStyle = a.color;
		ctx.beginPath();
		ctx.arc(a.x * cell, a.y * cell, cell / 2, 0, 2 * Math.PI);
		ctx.fill();
		if (f.debug) {
			ctx.strokeStyle = a.color;
			ctx.beginPath();
			ctx.arc(a.x * cell, a.y * cell, a.radius * cell, 0, 2 * Math.PI);
			ctx.stroke();
		}
	}
	status.textContent = f.name + " tick=" + f.tick + " claimed=" + f.claimed;
}

const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = (ev) => {
	const msg = JSON.parse(ev.data);
	if (msg.type === "init") {
		bar.innerHTML = "";
		for (const name of msg.data.scenarios) {
			const b = document.createElement("button");
			b.textContent = name;
			b.onclick = () => post("/scenario/" + name);
			bar.appendChild(b);
		}
		const d = document.createElement("button");
		d.textContent = "debug";
		d.onclick = () => post("/debug");
		bar.appendChild(d);
	} else if (msg.type === "frame") {
		draw(msg.data);
	}
};
</script>
</body>
</html>
`
